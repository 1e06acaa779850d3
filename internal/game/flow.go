package game

import (
	"context"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// Screen transition events.
const (
	evOpenSpelling    = "openSpelling"
	evOpenMatching    = "openMatching"
	evStartSpelling   = "startSpelling"
	evFinishSpelling  = "finishSpelling"
	evOpenSingle      = "openSingle"
	evOpenDual        = "openDual"
	evConfirmSingle   = "confirmSingle"
	evStartChallenge  = "startChallenge"
	evFinishChallenge = "finishChallenge"
	evNextChallenger  = "nextChallenger"
	evStartDuel       = "startDuel"
	evFinishDuel      = "finishDuel"
	evBackToMenu      = "backToMenu"
	evHome            = "home"
)

func allBut(skip Kind) []string {
	out := make([]string, 0, len(kindNames)-1)
	for k, name := range kindNames {
		if Kind(k) != skip {
			out = append(out, name)
		}
	}
	return out
}

func names(kinds ...Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}

func getTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: evOpenSpelling, Src: names(Home), Dst: SpellingSetup.String()},
		{Name: evOpenMatching, Src: names(Home), Dst: MatchingMenu.String()},

		{Name: evStartSpelling, Src: names(SpellingSetup), Dst: SpellingPlaying.String()},
		{Name: evFinishSpelling, Src: names(SpellingPlaying), Dst: SpellingReview.String()},

		{Name: evOpenSingle, Src: names(MatchingMenu), Dst: MatchingSingleSetup.String()},
		{Name: evOpenDual, Src: names(MatchingMenu), Dst: MatchingDualSetup.String()},

		{Name: evConfirmSingle, Src: names(MatchingSingleSetup), Dst: MatchingSinglePlayerEntry.String()},
		{Name: evStartChallenge, Src: names(MatchingSinglePlayerEntry), Dst: MatchingSinglePlaying.String()},
		{Name: evFinishChallenge, Src: names(MatchingSinglePlaying), Dst: MatchingSingleResult.String()},
		{Name: evNextChallenger, Src: names(MatchingSingleResult), Dst: MatchingSinglePlayerEntry.String()},

		{Name: evStartDuel, Src: names(MatchingDualSetup), Dst: MatchingDualPlaying.String()},
		{Name: evFinishDuel, Src: names(MatchingDualPlaying), Dst: MatchingDualResult.String()},

		{Name: evBackToMenu, Src: names(
			MatchingSingleSetup,
			MatchingSinglePlayerEntry,
			MatchingDualSetup,
			MatchingSingleResult,
			MatchingDualResult,
		), Dst: MatchingMenu.String()},
		{Name: evHome, Src: allBut(Home), Dst: Home.String()},
	}
}

// newFlow builds the transition table. Entering any screen releases every
// armed timer and closes the quit overlay.
func newFlow(e *Engine) *fsm.FSM {
	return fsm.NewFSM(
		Home.String(),
		getTransitions(),
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				e.timers.releaseAll()
				e.quitting = false
				e.log.Debug("screen transition",
					zap.String("event", ev.Event),
					zap.String("from", ev.Src),
					zap.String("to", ev.Dst),
				)
			},
		},
	)
}
