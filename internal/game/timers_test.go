package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimersArmReplacesPrevious(t *testing.T) {
	tm := newTimers()
	first := tm.arm(MismatchP1)
	second := tm.arm(MismatchP1)
	assert.NotEqual(t, first.Seq, second.Seq)
	assert.Equal(t, MismatchDelay, second.Delay)

	assert.False(t, tm.take(first.Kind, first.Seq), "superseded instance is stale")
	assert.True(t, tm.take(second.Kind, second.Seq))
	assert.False(t, tm.take(second.Kind, second.Seq), "a timer applies once")
}

func TestTimersReleaseAll(t *testing.T) {
	tm := newTimers()
	tick := tm.arm(ElapsedTick)
	hint := tm.arm(HintReveal)
	tm.arm(DiceRoll)
	tm.release(DiceRoll)
	assert.Equal(t, []TimerKind{ElapsedTick, HintReveal}, tm.kinds())

	tm.releaseAll()
	assert.Empty(t, tm.kinds())
	assert.False(t, tm.take(tick.Kind, tick.Seq))
	assert.False(t, tm.take(hint.Kind, hint.Seq))
}

func TestTimerKindDelays(t *testing.T) {
	for kind, name := range map[TimerKind]string{
		ElapsedTick: "elapsed-tick",
		HintReveal:  "hint-reveal",
		MismatchP1:  "mismatch-p1",
		MismatchP2:  "mismatch-p2",
		WrongToast:  "wrong-toast",
		DiceRoll:    "dice-roll",
	} {
		assert.Equal(t, name, kind.String())
		assert.Positive(t, kind.Delay())
	}
}
