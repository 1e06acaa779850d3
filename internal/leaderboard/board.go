// Package leaderboard keeps the single-player results of a session.
package leaderboard

import (
	"sort"
	"time"

	"github.com/verte-zerg/vocabquest/internal/model"
)

// Board is an in-memory list of results ordered by time taken.
type Board struct {
	entries []model.LeaderboardEntry
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// Record adds a result and keeps the list sorted ascending by time.
// Equal times keep their insertion order; identifiers may repeat.
func (b *Board) Record(id string, taken time.Duration) {
	b.entries = append(b.entries, model.LeaderboardEntry{Identifier: id, TimeTaken: taken})
	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].TimeTaken < b.entries[j].TimeTaken
	})
}

// Reset clears the board.
func (b *Board) Reset() {
	b.entries = nil
}

// Entries returns a copy of the sorted results.
func (b *Board) Entries() []model.LeaderboardEntry {
	out := make([]model.LeaderboardEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Rank returns the 1-based position of the most recent entry for id, or 0.
func (b *Board) Rank(id string, taken time.Duration) int {
	for i := len(b.entries) - 1; i >= 0; i-- {
		e := b.entries[i]
		if e.Identifier == id && e.TimeTaken == taken {
			return i + 1
		}
	}
	return 0
}

// Len returns the number of results.
func (b *Board) Len() int {
	return len(b.entries)
}
