package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/vocabquest/internal/config"
	"github.com/verte-zerg/vocabquest/internal/model"
	"github.com/verte-zerg/vocabquest/internal/store"
	"github.com/verte-zerg/vocabquest/internal/vocab"
)

const sourceBundled = "bundled catalogue"

// loadLessons returns the catalogue to play with and a label for its source.
// A catalogue file wins over the database; an empty database falls back to
// the bundled lessons.
func loadLessons(ctx context.Context, lessonsPath, db string) ([]model.Lesson, string, error) {
	if lessonsPath != "" {
		lessons, err := vocab.LoadFile(lessonsPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load lessons: %w", err)
		}
		return lessons, lessonsPath, nil
	}
	lessons, err := loadStoredLessons(ctx, db)
	if err != nil {
		return nil, "", err
	}
	if len(lessons) > 0 {
		return lessons, db, nil
	}
	lessons, err = vocab.Default()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load bundled lessons: %w", err)
	}
	return lessons, sourceBundled, nil
}

// loadStoredLessons returns no lessons when the database file does not exist,
// leaving its creation to the import command.
func loadStoredLessons(ctx context.Context, db string) (lessons []model.Lesson, err error) {
	if _, err := os.Stat(db); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat db: %w", err)
	}
	st, err := store.Open(db)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	has, err := st.HasLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read lessons: %w", err)
	}
	if !has {
		return nil, nil
	}
	lessons, err = st.ListLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read lessons: %w", err)
	}
	return lessons, nil
}

// applyCatalogueConfig fills --lessons from the config file for subcommands.
func applyCatalogueConfig(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lessons", &playLessonsPath, fileCfg.Game.Lessons)
	return nil
}
