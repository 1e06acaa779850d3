// Package match implements the matching round state.
package match

import (
	"fmt"
	"time"

	"github.com/verte-zerg/vocabquest/internal/model"
)

// MaxPending is the number of cards a player may hold selected at once.
const MaxPending = 2

// Outcome reports what a selection did.
type Outcome int

const (
	Ignored Outcome = iota
	Pending
	Matched
	Mismatched
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Matched:
		return "matched"
	case Mismatched:
		return "mismatched"
	default:
		return "ignored"
	}
}

// Round tracks one player's board.
type Round struct {
	cards      []model.MatchingCard
	pending    []int
	matched    int
	startedAt  time.Time
	finishedAt time.Time
}

// NewRound starts a round over cards at now.
func NewRound(cards []model.MatchingCard, now time.Time) *Round {
	own := make([]model.MatchingCard, len(cards))
	copy(own, cards)
	return &Round{cards: own, startedAt: now}
}

// Select picks the card at index i.
// Two pending cards with equal keys and different sides are matched at once.
// A mismatched pair stays pending until ClearPending.
func (r *Round) Select(i int) Outcome {
	if i < 0 || i >= len(r.cards) || r.cards[i].Matched || r.IsPending(i) || len(r.pending) >= MaxPending {
		return Ignored
	}
	r.pending = append(r.pending, i)
	if len(r.pending) < MaxPending {
		return Pending
	}
	a, b := r.cards[r.pending[0]], r.cards[r.pending[1]]
	if a.Key != b.Key || a.Side == b.Side {
		return Mismatched
	}
	r.cards[r.pending[0]].Matched = true
	r.cards[r.pending[1]].Matched = true
	r.matched++
	r.pending = r.pending[:0]
	return Matched
}

// ClearPending drops the pending selection.
func (r *Round) ClearPending() {
	r.pending = r.pending[:0]
}

// IsPending reports whether card i is selected.
func (r *Round) IsPending(i int) bool {
	for _, p := range r.pending {
		if p == i {
			return true
		}
	}
	return false
}

// PendingCount returns the number of selected cards.
func (r *Round) PendingCount() int {
	return len(r.pending)
}

// Cards returns the board.
func (r *Round) Cards() []model.MatchingCard {
	return r.cards
}

// MatchedPairs returns the number of completed pairs.
func (r *Round) MatchedPairs() int {
	return r.matched
}

// Pairs returns the number of pairs dealt.
func (r *Round) Pairs() int {
	return len(r.cards) / 2
}

// Complete reports whether every dealt pair is matched.
func (r *Round) Complete() bool {
	return r.Pairs() > 0 && r.matched == r.Pairs()
}

// Finish freezes the clock. Later calls keep the first finish time.
func (r *Round) Finish(now time.Time) {
	if r.finishedAt.IsZero() {
		r.finishedAt = now
	}
}

// Finished reports whether the clock is frozen.
func (r *Round) Finished() bool {
	return !r.finishedAt.IsZero()
}

// Elapsed returns the wall-clock time since the start, frozen once finished.
func (r *Round) Elapsed(now time.Time) time.Duration {
	end := now
	if !r.finishedAt.IsZero() {
		end = r.finishedAt
	}
	if end.Before(r.startedAt) {
		return 0
	}
	return end.Sub(r.startedAt)
}

// FormatTime renders a duration as m:ss.s.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := d.Milliseconds() / 100
	mins := tenths / 600
	rest := tenths % 600
	return fmt.Sprintf("%d:%02d.%d", mins, rest/10, rest%10)
}
