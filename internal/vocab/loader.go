package vocab

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/vocabquest/internal/model"
)

//go:embed lessons.toml
var defaultCatalogue []byte

type catalogueFile struct {
	Lessons []lessonFile `toml:"lessons"`
}

type lessonFile struct {
	Key   string      `toml:"key"`
	Title string      `toml:"title"`
	Icon1 string      `toml:"icon1"`
	Icon2 string      `toml:"icon2"`
	Vocab []entryFile `toml:"vocab"`
}

type entryFile struct {
	Word       string       `toml:"word"`
	Definition string       `toml:"definition"`
	Images     []string     `toml:"images"`
	EnglishDef string       `toml:"english-def"`
	Example    *exampleFile `toml:"example"`
}

type exampleFile struct {
	Sentence    string `toml:"sentence"`
	Translation string `toml:"translation"`
}

// Default returns the lessons bundled with the binary.
func Default() ([]model.Lesson, error) {
	return Parse(defaultCatalogue)
}

// LoadFile reads a TOML lesson catalogue from path.
func LoadFile(path string) ([]model.Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lessons, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lessons, nil
}

// Parse decodes and validates a TOML lesson catalogue.
func Parse(data []byte) ([]model.Lesson, error) {
	var file catalogueFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("failed to decode lessons: %w", err)
	}
	if len(file.Lessons) == 0 {
		return nil, fmt.Errorf("lesson catalogue is empty")
	}
	seen := make(map[string]struct{}, len(file.Lessons))
	lessons := make([]model.Lesson, 0, len(file.Lessons))
	for i, lf := range file.Lessons {
		key := strings.TrimSpace(lf.Key)
		if key == "" {
			return nil, fmt.Errorf("lesson %d has no key", i+1)
		}
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("duplicate lesson key %q", key)
		}
		seen[key] = struct{}{}
		lesson := model.Lesson{
			Key:   key,
			Title: lf.Title,
			Icon1: lf.Icon1,
			Icon2: lf.Icon2,
			Vocab: make([]model.VocabularyItem, 0, len(lf.Vocab)),
		}
		if lesson.Title == "" {
			lesson.Title = key
		}
		for j, ef := range lf.Vocab {
			if strings.TrimSpace(ef.Word) == "" || strings.TrimSpace(ef.Definition) == "" {
				return nil, fmt.Errorf("lesson %q entry %d needs a word and a definition", key, j+1)
			}
			item := model.VocabularyItem{
				Word:       strings.TrimSpace(ef.Word),
				Definition: strings.TrimSpace(ef.Definition),
				Images:     ef.Images,
				EnglishDef: ef.EnglishDef,
			}
			if ef.Example != nil && ef.Example.Sentence != "" {
				item.Example = &model.Example{Sentence: ef.Example.Sentence, Translation: ef.Example.Translation}
			}
			lesson.Vocab = append(lesson.Vocab, item)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

// Find returns the lesson with the given key.
func Find(lessons []model.Lesson, key string) (model.Lesson, bool) {
	for _, l := range lessons {
		if l.Key == key {
			return l, true
		}
	}
	return model.Lesson{}, false
}

// Books returns the distinct book prefixes in catalogue order.
func Books(lessons []model.Lesson) []string {
	var books []string
	seen := map[string]struct{}{}
	for _, l := range lessons {
		b := l.Book()
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		books = append(books, b)
	}
	return books
}
