// Package game implements the screen state machine of the vocabulary game.
package game

import (
	"time"

	"github.com/verte-zerg/vocabquest/internal/match"
	"github.com/verte-zerg/vocabquest/internal/model"
	"github.com/verte-zerg/vocabquest/internal/spelling"
)

// Kind names a screen.
type Kind int

const (
	Home Kind = iota
	SpellingSetup
	SpellingPlaying
	SpellingReview
	MatchingMenu
	MatchingSingleSetup
	MatchingSinglePlayerEntry
	MatchingSinglePlaying
	MatchingSingleResult
	MatchingDualSetup
	MatchingDualPlaying
	MatchingDualResult
)

var kindNames = [...]string{
	Home:                      "home",
	SpellingSetup:             "spelling-setup",
	SpellingPlaying:           "spelling-playing",
	SpellingReview:            "spelling-review",
	MatchingMenu:              "matching-menu",
	MatchingSingleSetup:       "matching-single-setup",
	MatchingSinglePlayerEntry: "matching-single-player-entry",
	MatchingSinglePlaying:     "matching-single-playing",
	MatchingSingleResult:      "matching-single-result",
	MatchingDualSetup:         "matching-dual-setup",
	MatchingDualPlaying:       "matching-dual-playing",
	MatchingDualResult:        "matching-dual-result",
}

// String returns the screen name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Playing reports whether the screen runs a round that quitting would abort.
func (k Kind) Playing() bool {
	return k == SpellingPlaying || k == MatchingSinglePlaying || k == MatchingDualPlaying
}

func kindFromName(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return Kind(k)
		}
	}
	return Home
}

// State is the data of the active screen. Each Kind has exactly one variant.
type State interface {
	Kind() Kind
	screen()
}

// Mode is a home carousel entry.
type Mode int

const (
	ModeSpelling Mode = iota
	ModeMatching
)

// String returns the carousel label.
func (m Mode) String() string {
	if m == ModeMatching {
		return "Matching"
	}
	return "Spelling"
}

// HomeScreen shows the mode carousel and the lesson picker.
type HomeScreen struct {
	Mode       Mode
	PickerOpen bool
}

// SpellingSetupScreen chooses the number of questions.
type SpellingSetupScreen struct {
	Count int
}

// SpellingPlayingScreen runs a spelling session.
type SpellingPlayingScreen struct {
	Session *spelling.Session
}

// SpellingReviewScreen lists the words spelled wrong.
type SpellingReviewScreen struct {
	Wrong    []model.WrongAnswer
	Mistakes int
	Total    int
}

// MatchingMenuScreen chooses single or dual play.
type MatchingMenuScreen struct{}

// MatchingSingleSetupScreen chooses the pair count of a challenge session.
type MatchingSingleSetupScreen struct {
	Count int
}

// MatchingSinglePlayerEntryScreen asks for the next challenger.
type MatchingSinglePlayerEntryScreen struct {
	Count int
}

// MatchingSinglePlayingScreen runs one challenger's round.
type MatchingSinglePlayingScreen struct {
	Round      *match.Round
	Challenger string
	Count      int
	Elapsed    time.Duration
}

// MatchingSingleResultScreen shows the finished time and the leaderboard.
type MatchingSingleResultScreen struct {
	Challenger string
	TimeTaken  time.Duration
	Rank       int
	Count      int
}

// MatchingDualSetupScreen chooses the pair count and rolls the classroom dice.
type MatchingDualSetupScreen struct {
	Count   int
	DiceMax int
	Rolling bool
	Dice    []int
	pending []int
}

// MatchingDualPlayingScreen runs the split-screen duel.
type MatchingDualPlayingScreen struct {
	Duel      *match.Duel
	Count     int
	P1Elapsed time.Duration
	P2Elapsed time.Duration
}

// Winner returns the first side to finish.
func (s *MatchingDualPlayingScreen) Winner() match.Player {
	return s.Duel.Winner()
}

// MatchingDualResultScreen shows the duel outcome.
type MatchingDualResultScreen struct {
	Winner match.Player
	P1Time time.Duration
	P2Time time.Duration
	P1Done bool
	P2Done bool
}

func (*HomeScreen) Kind() Kind                      { return Home }
func (*SpellingSetupScreen) Kind() Kind             { return SpellingSetup }
func (*SpellingPlayingScreen) Kind() Kind           { return SpellingPlaying }
func (*SpellingReviewScreen) Kind() Kind            { return SpellingReview }
func (*MatchingMenuScreen) Kind() Kind              { return MatchingMenu }
func (*MatchingSingleSetupScreen) Kind() Kind       { return MatchingSingleSetup }
func (*MatchingSinglePlayerEntryScreen) Kind() Kind { return MatchingSinglePlayerEntry }
func (*MatchingSinglePlayingScreen) Kind() Kind     { return MatchingSinglePlaying }
func (*MatchingSingleResultScreen) Kind() Kind      { return MatchingSingleResult }
func (*MatchingDualSetupScreen) Kind() Kind         { return MatchingDualSetup }
func (*MatchingDualPlayingScreen) Kind() Kind       { return MatchingDualPlaying }
func (*MatchingDualResultScreen) Kind() Kind        { return MatchingDualResult }

func (*HomeScreen) screen()                      {}
func (*SpellingSetupScreen) screen()             {}
func (*SpellingPlayingScreen) screen()           {}
func (*SpellingReviewScreen) screen()            {}
func (*MatchingMenuScreen) screen()              {}
func (*MatchingSingleSetupScreen) screen()       {}
func (*MatchingSinglePlayerEntryScreen) screen() {}
func (*MatchingSinglePlayingScreen) screen()     {}
func (*MatchingSingleResultScreen) screen()      {}
func (*MatchingDualSetupScreen) screen()         {}
func (*MatchingDualPlayingScreen) screen()       {}
func (*MatchingDualResultScreen) screen()        {}
