package game

import "github.com/verte-zerg/vocabquest/internal/match"

// Action is an input to Engine.Dispatch.
type Action interface {
	action()
}

type (
	// ChooseLesson selects the active lesson by key and closes the picker.
	ChooseLesson struct{ Key string }
	// OpenLessons opens the lesson picker on the home screen.
	OpenLessons struct{}
	// MoveCarousel moves the home carousel by Delta entries.
	MoveCarousel struct{ Delta int }
	// StartMode enters the selected carousel mode.
	StartMode struct{}
	// Back leaves a menu, setup or result screen.
	Back struct{}
	// SetCount sets the question or pair count on a setup screen.
	SetCount struct{ Count int }

	// StartSpelling deals the spelling questions.
	StartSpelling struct{}
	// TypeLetter types one letter of the current word.
	TypeLetter struct{ Letter rune }
	// Backspace erases the last typed letter.
	Backspace struct{}
	// BuyHint reveals one more letter.
	BuyHint struct{}
	// NextQuestion moves past a correctly spelled word.
	NextQuestion struct{}
	// ShowExample opens the example sentence.
	ShowExample struct{}
	// CloseExample closes the example sentence.
	CloseExample struct{}

	// ChooseSingle opens the single-player setup.
	ChooseSingle struct{}
	// ChooseDual opens the dual-player setup.
	ChooseDual struct{}
	// ConfirmSingleSetup starts a challenge session and clears the leaderboard.
	ConfirmSingleSetup struct{}
	// StartChallenge deals a round for the given challenger.
	StartChallenge struct{ Challenger string }
	// SelectCard selects a card. Player is ignored in single-player rounds.
	SelectCard struct {
		Player match.Player
		Index  int
	}
	// FinishChallenge moves a completed round to the result screen.
	FinishChallenge struct{}
	// NextChallenger returns to challenger entry.
	NextChallenger struct{}

	// SetDiceMax sets the upper bound of the classroom dice.
	SetDiceMax struct{ Max int }
	// RollDice rolls the classroom dice Times times.
	RollDice struct{ Times int }
	// StartDuel deals the split-screen duel.
	StartDuel struct{}
	// FinishDuel moves a decided duel to the result screen.
	FinishDuel struct{}

	// RequestQuit asks to abort the running round.
	RequestQuit struct{}
	// CancelQuit keeps playing.
	CancelQuit struct{}
	// ConfirmQuit aborts the round and returns home.
	ConfirmQuit struct{}

	// TimerFired delivers an armed timer back to the engine.
	TimerFired struct {
		Kind TimerKind
		Seq  uint64
	}
)

func (ChooseLesson) action()       {}
func (OpenLessons) action()        {}
func (MoveCarousel) action()       {}
func (StartMode) action()          {}
func (Back) action()               {}
func (SetCount) action()           {}
func (StartSpelling) action()      {}
func (TypeLetter) action()         {}
func (Backspace) action()          {}
func (BuyHint) action()            {}
func (NextQuestion) action()       {}
func (ShowExample) action()        {}
func (CloseExample) action()       {}
func (ChooseSingle) action()       {}
func (ChooseDual) action()         {}
func (ConfirmSingleSetup) action() {}
func (StartChallenge) action()     {}
func (SelectCard) action()         {}
func (FinishChallenge) action()    {}
func (NextChallenger) action()     {}
func (SetDiceMax) action()         {}
func (RollDice) action()           {}
func (StartDuel) action()          {}
func (FinishDuel) action()         {}
func (RequestQuit) action()        {}
func (CancelQuit) action()         {}
func (ConfirmQuit) action()        {}
func (TimerFired) action()         {}
