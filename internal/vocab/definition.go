package vocab

import (
	"regexp"
	"strings"

	"github.com/verte-zerg/vocabquest/internal/model"
)

// posPattern matches a leading tag such as "(n.)", "(v.)", "(adj.)" or "(n. [C])".
var posPattern = regexp.MustCompile(`^(\([a-z]+\.?\s*(?:\[.*?\])?\))\s*(.*)`)

// ParseDefinition splits a definition into its part-of-speech tag and the clean text.
// A definition without a tag returns an empty tag and the trimmed definition.
func ParseDefinition(definition string) (pos, clean string) {
	m := posPattern.FindStringSubmatch(definition)
	if m == nil {
		return "", strings.TrimSpace(definition)
	}
	return m[1], strings.TrimSpace(m[2])
}

// Identity returns the lowercased word plus part-of-speech tag of an item.
func Identity(item model.VocabularyItem) string {
	pos, _ := ParseDefinition(item.Definition)
	return strings.ToLower(item.Word) + "-" + pos
}
