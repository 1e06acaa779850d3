package game

import (
	"sort"
	"time"
)

// TimerKind names a screen timer.
type TimerKind int

const (
	ElapsedTick TimerKind = iota
	HintReveal
	MismatchP1
	MismatchP2
	WrongToast
	DiceRoll
)

// Timer delays.
const (
	ElapsedTickDelay = 100 * time.Millisecond
	HintRevealDelay  = 10 * time.Second
	MismatchDelay    = 300 * time.Millisecond
	WrongToastDelay  = 750 * time.Millisecond
	DiceRollDelay    = 2500 * time.Millisecond
)

// String returns the timer name.
func (k TimerKind) String() string {
	switch k {
	case ElapsedTick:
		return "elapsed-tick"
	case HintReveal:
		return "hint-reveal"
	case MismatchP1:
		return "mismatch-p1"
	case MismatchP2:
		return "mismatch-p2"
	case WrongToast:
		return "wrong-toast"
	case DiceRoll:
		return "dice-roll"
	default:
		return "unknown"
	}
}

// Delay returns how long after arming the timer fires.
func (k TimerKind) Delay() time.Duration {
	switch k {
	case ElapsedTick:
		return ElapsedTickDelay
	case HintReveal:
		return HintRevealDelay
	case MismatchP1, MismatchP2:
		return MismatchDelay
	case WrongToast:
		return WrongToastDelay
	case DiceRoll:
		return DiceRollDelay
	default:
		return 0
	}
}

// Timer asks the caller to deliver TimerFired{Kind, Seq} after Delay.
type Timer struct {
	Kind  TimerKind
	Delay time.Duration
	Seq   uint64
}

// Fired returns the action to dispatch when the timer elapses.
func (t Timer) Fired() TimerFired {
	return TimerFired{Kind: t.Kind, Seq: t.Seq}
}

// timers tracks the armed instance of each kind. A fired timer is applied
// only while it is still the armed instance.
type timers struct {
	seq   uint64
	armed map[TimerKind]uint64
}

func newTimers() *timers {
	return &timers{armed: make(map[TimerKind]uint64)}
}

// arm replaces any armed instance of kind.
func (t *timers) arm(kind TimerKind) Timer {
	t.seq++
	t.armed[kind] = t.seq
	return Timer{Kind: kind, Delay: kind.Delay(), Seq: t.seq}
}

func (t *timers) release(kind TimerKind) {
	delete(t.armed, kind)
}

func (t *timers) releaseAll() {
	clear(t.armed)
}

// take consumes a fired timer, reporting whether it was live.
func (t *timers) take(kind TimerKind, seq uint64) bool {
	cur, ok := t.armed[kind]
	if !ok || cur != seq {
		return false
	}
	delete(t.armed, kind)
	return true
}

func (t *timers) kinds() []TimerKind {
	out := make([]TimerKind, 0, len(t.armed))
	for k := range t.armed {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
