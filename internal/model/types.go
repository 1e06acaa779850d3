// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// Example is a sample sentence with its translation.
type Example struct {
	Sentence    string
	Translation string
}

// VocabularyItem is one entry of a lesson.
type VocabularyItem struct {
	Word       string
	Definition string // Chinese definition, optionally led by a part-of-speech tag.
	Images     []string
	EnglishDef string
	Example    *Example
}

// Key returns the match key shared by both cards of the item.
func (v VocabularyItem) Key() string {
	return v.Word + v.Definition
}

// Lesson is a titled vocabulary list.
type Lesson struct {
	Key   string
	Title string
	Icon1 string
	Icon2 string
	Vocab []VocabularyItem
}

// Book returns the key prefix that groups lessons, e.g. "B3" for "B3-L1".
func (l Lesson) Book() string {
	book, _, _ := strings.Cut(l.Key, "-")
	return book
}

// Side marks which language a matching card shows.
type Side int

const (
	SideEnglish Side = iota
	SideChinese
)

// String returns the short label of the side.
func (s Side) String() string {
	if s == SideChinese {
		return "CN"
	}
	return "EN"
}

// MatchingCard is one tile of a matching round.
type MatchingCard struct {
	ID      string
	Key     string
	Content string
	Side    Side
	Matched bool
}

// WrongAnswer tracks mistakes made on a word during a spelling session.
type WrongAnswer struct {
	Word       string
	Definition string
	Mistakes   int
}

// LeaderboardEntry is one finished single-player round.
type LeaderboardEntry struct {
	Identifier string
	TimeTaken  time.Duration
}

// Settings defines game defaults resolved from flags and config.
type Settings struct {
	Lesson        string
	LessonsPath   string
	SpellingCount int
	SingleCount   int
	DualCount     int
	DiceMax       int
	WeakFactor    float64
	PasswordHash  string
	LogFile       string
	Seed          int64
}
