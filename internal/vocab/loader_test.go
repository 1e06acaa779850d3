package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalogue = `
[[lessons]]
key = "B3-L9"
title = "Sample"
icon1 = "🐱"
icon2 = "🐶"

  [[lessons.vocab]]
  word = " cat "
  definition = "(n.) 貓"
  images = ["🐱"]
  english-def = "a pet"
  example = { sentence = "A cat.", translation = "一隻貓。" }

  [[lessons.vocab]]
  word = "dog"
  definition = "(n.) 狗"

[[lessons]]
key = "B4-L9"

  [[lessons.vocab]]
  word = "run"
  definition = "(v.) 跑"
`

func TestParseCatalogue(t *testing.T) {
	lessons, err := Parse([]byte(sampleCatalogue))
	require.NoError(t, err)
	require.Len(t, lessons, 2)

	first := lessons[0]
	assert.Equal(t, "B3-L9", first.Key)
	assert.Equal(t, "B3", first.Book())
	require.Len(t, first.Vocab, 2)
	assert.Equal(t, "cat", first.Vocab[0].Word)
	require.NotNil(t, first.Vocab[0].Example)
	assert.Equal(t, "一隻貓。", first.Vocab[0].Example.Translation)
	assert.Nil(t, first.Vocab[1].Example)

	assert.Equal(t, "B4-L9", lessons[1].Title, "title falls back to key")
	assert.Equal(t, []string{"B3", "B4"}, Books(lessons))
}

func TestParseRejectsBadCatalogues(t *testing.T) {
	cases := map[string]string{
		"empty":     ``,
		"no key":    "[[lessons]]\ntitle = \"x\"\n",
		"duplicate": "[[lessons]]\nkey = \"a\"\n[[lessons]]\nkey = \"a\"\n",
		"no word":   "[[lessons]]\nkey = \"a\"\n[[lessons.vocab]]\ndefinition = \"(n.) 貓\"\n",
		"bad toml":  "[[lessons]\n",
	}
	for name, data := range cases {
		_, err := Parse([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestDefaultCatalogue(t *testing.T) {
	lessons, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, lessons)
	for _, l := range lessons {
		assert.GreaterOrEqual(t, len(l.Vocab), 12, "lesson %s should fill a 12-pair board", l.Key)
	}
	_, ok := Find(lessons, "B3-L1")
	assert.True(t, ok)
	_, ok = Find(lessons, "missing")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalogue), 0o644))
	lessons, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, lessons, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
