package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/verte-zerg/vocabquest/internal/config"
)

// newLogger writes JSON lines to path. The terminal belongs to the TUI, so
// nothing is logged to stdout or stderr.
func newLogger(path string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// resolveLogFile picks the log path for subcommands without a --log-file
// flag: environment first, then the config file, then the default.
func resolveLogFile() (string, error) {
	env, err := config.LoadEnv(config.DefaultEnvPath(), ".env")
	if err != nil {
		return "", err
	}
	if env.LogFile != "" {
		return env.LogFile, nil
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if fileCfg.Game.LogFile != nil && *fileCfg.Game.LogFile != "" {
		return *fileCfg.Game.LogFile, nil
	}
	return config.DefaultLogPath(), nil
}
