package match

import (
	"time"

	"github.com/verte-zerg/vocabquest/internal/model"
)

// Player identifies a duel side.
type Player int

const (
	NoPlayer Player = iota
	P1
	P2
)

// String returns the side label.
func (p Player) String() string {
	switch p {
	case P1:
		return "P1"
	case P2:
		return "P2"
	default:
		return "-"
	}
}

// Duel runs two rounds over the same card content.
type Duel struct {
	rounds [2]*Round
	winner Player
}

// NewDuel starts both sides at now. p2Cards should be a reshuffled copy of p1Cards.
func NewDuel(p1Cards, p2Cards []model.MatchingCard, now time.Time) *Duel {
	return &Duel{rounds: [2]*Round{NewRound(p1Cards, now), NewRound(p2Cards, now)}}
}

// Round returns the board of p.
func (d *Duel) Round(p Player) *Round {
	switch p {
	case P1:
		return d.rounds[0]
	case P2:
		return d.rounds[1]
	default:
		return nil
	}
}

// Select applies a selection for p. The first side to complete becomes the
// winner; a later completion by the other side never replaces it.
func (d *Duel) Select(p Player, i int, now time.Time) Outcome {
	r := d.Round(p)
	if r == nil {
		return Ignored
	}
	out := r.Select(i)
	if out == Matched && r.Complete() {
		r.Finish(now)
		if d.winner == NoPlayer {
			d.winner = p
		}
	}
	return out
}

// Winner returns the first side to finish, or NoPlayer.
func (d *Duel) Winner() Player {
	return d.winner
}

// Done reports whether both sides have finished.
func (d *Duel) Done() bool {
	return d.rounds[0].Complete() && d.rounds[1].Complete()
}
