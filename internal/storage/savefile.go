package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/bonsai/internal/bonsai"
)

// DefaultSavePath is where the resume point is kept unless configured otherwise.
const DefaultSavePath = "~/.bonsai/savefile"

var (
	// ErrNoSave means there is no save file to resume from.
	ErrNoSave = errors.New("storage: no save file")

	// ErrMalformedSave means the save file exists but cannot be parsed.
	ErrMalformedSave = errors.New("storage: malformed save file")
)

// SaveFile persists the resume point of a tree as a single line of text:
// the seed and the branch count, separated by a space.
type SaveFile struct {
	path string
}

var _ bonsai.Persistence = (*SaveFile)(nil)

// NewSaveFile returns a save file at path. A leading ~ is expanded and an
// empty path selects DefaultSavePath.
func NewSaveFile(path string) (*SaveFile, error) {
	if path == "" {
		path = DefaultSavePath
	}
	p, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return &SaveFile{path: p}, nil
}

// Path returns the expanded file path.
func (f *SaveFile) Path() string {
	return f.path
}

// Save replaces the file with the given seed and branch count. The new
// content is written to a temporary file next to it and renamed into
// place, so a crash never leaves a truncated save.
func (f *SaveFile) Save(seed int64, branches int) error {
	if err := ensureDir(f.path); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+"-*")
	if err != nil {
		return fmt.Errorf("storage: cannot write save file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	_, err = fmt.Fprintf(tmp, "%d %d", seed, branches)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), f.path)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot write save file: %w", err)
	}
	return nil
}

// Load reads the saved seed and branch count. It returns ErrNoSave when
// the file does not exist and ErrMalformedSave when it is not exactly two
// non-negative integers.
func (f *SaveFile) Load() (bonsai.SaveState, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return bonsai.SaveState{}, ErrNoSave
	}
	if err != nil {
		return bonsai.SaveState{}, fmt.Errorf("storage: cannot read save file: %w", err)
	}
	return ParseSave(string(data))
}

// ParseSave parses the save file format.
func ParseSave(s string) (bonsai.SaveState, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return bonsai.SaveState{}, fmt.Errorf("%w: expected 2 fields, got %d", ErrMalformedSave, len(fields))
	}

	seed, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || seed < 0 {
		return bonsai.SaveState{}, fmt.Errorf("%w: bad seed %q", ErrMalformedSave, fields[0])
	}
	branches, err := strconv.Atoi(fields[1])
	if err != nil || branches < 0 {
		return bonsai.SaveState{}, fmt.Errorf("%w: bad branch count %q", ErrMalformedSave, fields[1])
	}
	return bonsai.SaveState{Seed: seed, Branches: branches}, nil
}
