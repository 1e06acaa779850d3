package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read at startup.
const (
	EnvPassword = "VOCABQUEST_PASSWORD"
	EnvLogFile  = "VOCABQUEST_LOG_FILE"
)

// EnvOverrides holds values given through the environment or a .env file.
type EnvOverrides struct {
	Password string
	LogFile  string
}

// LoadEnv reads .env files into the process environment and returns the
// overrides. Variables already set win over the files; missing files are skipped.
func LoadEnv(paths ...string) (EnvOverrides, error) {
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		} else if !os.IsNotExist(err) {
			return EnvOverrides{}, fmt.Errorf("failed to stat env file: %w", err)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return EnvOverrides{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}
	return EnvOverrides{
		Password: os.Getenv(EnvPassword),
		LogFile:  os.Getenv(EnvLogFile),
	}, nil
}
