// Package store handles the SQLite lesson catalogue.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/vocabquest/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for imported lessons. It holds no game state.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lessons (
			key TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			icon1 TEXT NOT NULL,
			icon2 TEXT NOT NULL,
			imported_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS vocab (
			lesson_key TEXT NOT NULL,
			position INTEGER NOT NULL,
			word TEXT NOT NULL,
			definition TEXT NOT NULL,
			images TEXT NOT NULL,
			english_def TEXT NOT NULL,
			example_sentence TEXT,
			example_translation TEXT,
			PRIMARY KEY (lesson_key, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_position ON lessons(position);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ImportLessons stores lessons, replacing any lesson with the same key.
// New keys are appended after the existing catalogue; replaced keys keep their place.
func (s *Store) ImportLessons(ctx context.Context, lessons []model.Lesson, importedAt time.Time) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM lessons`).Scan(&next); err != nil {
		return err
	}

	vocabStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO vocab (lesson_key, position, word, definition, images, english_def, example_sentence, example_translation)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := vocabStmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	for _, lesson := range lessons {
		var position int
		switch err := tx.QueryRowContext(ctx, `SELECT position FROM lessons WHERE key = ?`, lesson.Key).Scan(&position); err {
		case nil:
		case sql.ErrNoRows:
			position = next
			next++
		default:
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM vocab WHERE lesson_key = ?`, lesson.Key); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lessons (key, position, title, icon1, icon2, imported_at) VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET title = excluded.title, icon1 = excluded.icon1,
			 icon2 = excluded.icon2, imported_at = excluded.imported_at`,
			lesson.Key, position, lesson.Title, lesson.Icon1, lesson.Icon2, importedAt.Format(time.RFC3339Nano),
		); err != nil {
			return err
		}
		for i, item := range lesson.Vocab {
			images, err := json.Marshal(nonNil(item.Images))
			if err != nil {
				return fmt.Errorf("failed to encode images of %q: %w", item.Word, err)
			}
			var sentence, translation sql.NullString
			if item.Example != nil {
				sentence = sql.NullString{String: item.Example.Sentence, Valid: true}
				translation = sql.NullString{String: item.Example.Translation, Valid: true}
			}
			if _, err := vocabStmt.ExecContext(ctx, lesson.Key, i, item.Word, item.Definition, string(images), item.EnglishDef, sentence, translation); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func nonNil(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}

// HasLessons reports whether any lesson has been imported.
func (s *Store) HasLessons(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListLessons returns every lesson in catalogue order with its vocabulary.
func (s *Store) ListLessons(ctx context.Context) ([]model.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, title, icon1, icon2 FROM lessons ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var lessons []model.Lesson
	index := map[string]int{}
	for rows.Next() {
		var l model.Lesson
		if err := rows.Scan(&l.Key, &l.Title, &l.Icon1, &l.Icon2); err != nil {
			return nil, err
		}
		index[l.Key] = len(lessons)
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, nil
	}

	vrows, err := s.db.QueryContext(ctx,
		`SELECT lesson_key, word, definition, images, english_def, example_sentence, example_translation
		 FROM vocab
		 ORDER BY lesson_key ASC, position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := vrows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for vrows.Next() {
		var (
			key         string
			item        model.VocabularyItem
			images      string
			sentence    sql.NullString
			translation sql.NullString
		)
		if err := vrows.Scan(&key, &item.Word, &item.Definition, &images, &item.EnglishDef, &sentence, &translation); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(images), &item.Images); err != nil {
			return nil, fmt.Errorf("failed to decode images of %q: %w", item.Word, err)
		}
		if len(item.Images) == 0 {
			item.Images = nil
		}
		if sentence.Valid {
			item.Example = &model.Example{Sentence: sentence.String, Translation: translation.String}
		}
		i, ok := index[key]
		if !ok {
			continue
		}
		lessons[i].Vocab = append(lessons[i].Vocab, item)
	}
	if err := vrows.Err(); err != nil {
		return nil, err
	}
	return lessons, nil
}

// DeleteLessons removes lessons by key and reports how many were removed.
func (s *Store) DeleteLessons(ctx context.Context, keys []string) (n int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM vocab WHERE lesson_key = ?`, key); err != nil {
			return 0, err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM lessons WHERE key = ?`, key)
		if err != nil {
			return 0, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		n += affected
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
