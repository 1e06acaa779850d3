// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
}

// GameConfig maps game settings.
type GameConfig struct {
	Lesson        *string  `toml:"lesson"`
	Lessons       *string  `toml:"lessons"`
	SpellingCount *int     `toml:"spelling-count"`
	SingleCount   *int     `toml:"single-count"`
	DualCount     *int     `toml:"dual-count"`
	DiceMax       *int     `toml:"dice-max"`
	WeakFactor    *float64 `toml:"weak-factor"`
	PasswordHash  *string  `toml:"password-hash"`
	LogFile       *string  `toml:"log-file"`
	Seed          *int64   `toml:"seed"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
