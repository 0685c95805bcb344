// Package storage persists bonsai state: the resume save file and a
// SQLite history of grown trees.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultDBPath is the default location of the tree history.
const DefaultDBPath = "~/.bonsai/history.db"

// Store manages the SQLite database connection for tree history.
type Store struct {
	db *sql.DB
}

// TreeRecord is one grown tree.
type TreeRecord struct {
	ID         int64
	Seed       int64
	Life       int
	Multiplier int
	Branches   int
	Shoots     int
	Trunks     int
	CreatedAt  time.Time
}

// TreeStats contains aggregated statistics over all recorded trees.
type TreeStats struct {
	Count       int
	MaxBranches int
	AvgBranches float64
	TotalShoots int64
	LastGrown   time.Time
	LargestSeed int64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS trees (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			life INTEGER NOT NULL,
			multiplier INTEGER NOT NULL,
			branches INTEGER NOT NULL,
			shoots INTEGER NOT NULL DEFAULT 0,
			trunks INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_trees_created ON trees(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_trees_branches ON trees(branches DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveTree records a finished tree.
// Returns the ID of the inserted record.
func (s *Store) SaveTree(r TreeRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO trees (seed, life, multiplier, branches, shoots, trunks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Life, r.Multiplier, r.Branches, r.Shoots, r.Trunks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save tree: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const treeColumns = `id, seed, life, multiplier, branches, shoots, trunks, created_at`

// RecentTrees retrieves the most recently grown trees, newest first.
func (s *Store) RecentTrees(limit int) ([]TreeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+treeColumns+`
		 FROM trees
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query trees: %w", err)
	}
	defer rows.Close()

	var records []TreeRecord
	for rows.Next() {
		var r TreeRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Life, &r.Multiplier, &r.Branches, &r.Shoots, &r.Trunks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// TreeByID retrieves a tree by its ID. It returns nil when there is no such tree.
func (s *Store) TreeByID(id int64) (*TreeRecord, error) {
	var r TreeRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT `+treeColumns+` FROM trees WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Seed, &r.Life, &r.Multiplier, &r.Branches, &r.Shoots, &r.Trunks, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tree: %w", err)
	}

	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// Stats retrieves aggregated statistics over all trees.
func (s *Store) Stats() (*TreeStats, error) {
	stats := &TreeStats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(branches), 0), COALESCE(AVG(branches), 0), COALESCE(SUM(shoots), 0)
		 FROM trees`,
	).Scan(&stats.Count, &stats.MaxBranches, &stats.AvgBranches, &stats.TotalShoots)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get tree stats: %w", err)
	}
	if stats.Count == 0 {
		return stats, nil
	}

	var lastGrown any
	err = s.db.QueryRow(
		`SELECT created_at FROM trees ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastGrown)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get last grown: %w", err)
	}
	stats.LastGrown = parseTime(lastGrown)

	err = s.db.QueryRow(
		`SELECT seed FROM trees ORDER BY branches DESC, id ASC LIMIT 1`,
	).Scan(&stats.LargestSeed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get largest tree: %w", err)
	}

	return stats, nil
}

// ClearTrees deletes the whole history.
func (s *Store) ClearTrees() error {
	if _, err := s.db.Exec("DELETE FROM trees"); err != nil {
		return fmt.Errorf("storage: cannot clear trees: %w", err)
	}
	return nil
}

// parseTime converts a DATETIME column, which the driver may return as
// either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
