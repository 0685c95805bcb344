package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bonsai.yaml
var defaultBonsaiYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Tree: TreeConfig{
			Life:       32,
			Multiplier: 5,
			Base:       1,
			Leaves:     "&",
		},
		Live: LiveConfig{
			Step: 30 * time.Millisecond,
			Wait: 4 * time.Second,
		},
		Storage: StorageConfig{
			SaveFile: "~/.bonsai/savefile",
			Database: "~/.bonsai/history.db",
			History:  true,
			LogFile:  "~/.bonsai/bonsai.log",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
