// Package vocab provides lesson vocabulary helpers.
package vocab

import (
	"strings"

	"github.com/verte-zerg/vocabquest/internal/model"
)

// FilterFunc returns true when an item should be kept.
type FilterFunc func(model.VocabularyItem) bool

// IsLetter reports whether r is a lowercase ASCII letter.
func IsLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// Spellable reports whether the word can be typed with a-z keystrokes only.
func Spellable(item model.VocabularyItem) bool {
	word := strings.ToLower(item.Word)
	if word == "" {
		return false
	}
	for _, r := range word {
		if !IsLetter(r) {
			return false
		}
	}
	return true
}

// Filter returns the items accepted by keep, preserving order.
func Filter(items []model.VocabularyItem, keep FilterFunc) []model.VocabularyItem {
	out := make([]model.VocabularyItem, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
