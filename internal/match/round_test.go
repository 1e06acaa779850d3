package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/vocabquest/internal/model"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// board returns cat-EN, cat-CN, dog-EN, dog-CN in that order.
func board() []model.MatchingCard {
	return []model.MatchingCard{
		{ID: "1", Key: "cat(n.) 貓", Content: "cat", Side: model.SideEnglish},
		{ID: "2", Key: "cat(n.) 貓", Content: "貓", Side: model.SideChinese},
		{ID: "3", Key: "dog(n.) 狗", Content: "dog", Side: model.SideEnglish},
		{ID: "4", Key: "dog(n.) 狗", Content: "狗", Side: model.SideChinese},
	}
}

func TestSelectMatchesPair(t *testing.T) {
	r := NewRound(board(), t0)
	assert.Equal(t, Pending, r.Select(0))
	assert.Equal(t, Matched, r.Select(1))
	assert.Equal(t, 1, r.MatchedPairs())
	assert.Equal(t, 0, r.PendingCount())
	assert.True(t, r.Cards()[0].Matched)
	assert.True(t, r.Cards()[1].Matched)

	assert.Equal(t, Ignored, r.Select(0), "matched cards are not selectable")
	assert.Equal(t, Ignored, r.Select(1))
	assert.False(t, r.Complete())
}

func TestSelectMismatchKeepsPendingUntilCleared(t *testing.T) {
	r := NewRound(board(), t0)
	assert.Equal(t, Pending, r.Select(0))
	assert.Equal(t, Mismatched, r.Select(3))
	assert.Equal(t, 2, r.PendingCount())
	assert.Equal(t, Ignored, r.Select(1), "no third pending card")
	assert.Equal(t, 2, r.PendingCount())

	r.ClearPending()
	assert.Equal(t, 0, r.PendingCount())
	assert.False(t, r.Cards()[0].Matched)
	assert.Equal(t, Pending, r.Select(0))
}

func TestSelectSameSideIsMismatch(t *testing.T) {
	cards := []model.MatchingCard{
		{ID: "a", Key: "k", Side: model.SideEnglish},
		{ID: "b", Key: "k", Side: model.SideEnglish},
	}
	r := NewRound(cards, t0)
	r.Select(0)
	assert.Equal(t, Mismatched, r.Select(1))
}

func TestSelectIgnoresRepeatsAndBadIndex(t *testing.T) {
	r := NewRound(board(), t0)
	assert.Equal(t, Ignored, r.Select(-1))
	assert.Equal(t, Ignored, r.Select(4))
	r.Select(2)
	assert.Equal(t, Ignored, r.Select(2))
	assert.Equal(t, 1, r.PendingCount())
}

func TestPendingNeverExceedsTwo(t *testing.T) {
	r := NewRound(board(), t0)
	for _, i := range []int{0, 3, 1, 2, 0, 3} {
		r.Select(i)
		require.LessOrEqual(t, r.PendingCount(), MaxPending)
	}
}

func TestCompleteAndFrozenClock(t *testing.T) {
	r := NewRound(board(), t0)
	r.Select(0)
	r.Select(1)
	r.Select(3)
	r.Select(2)
	require.True(t, r.Complete())

	assert.Equal(t, 1500*time.Millisecond, r.Elapsed(t0.Add(1500*time.Millisecond)))
	r.Finish(t0.Add(2 * time.Second))
	r.Finish(t0.Add(5 * time.Second))
	assert.True(t, r.Finished())
	assert.Equal(t, 2*time.Second, r.Elapsed(t0.Add(time.Minute)))
}

func TestEmptyRoundIsNeverComplete(t *testing.T) {
	r := NewRound(nil, t0)
	assert.False(t, r.Complete())
	assert.Equal(t, 0, r.Pairs())
}

func TestRoundCopiesCards(t *testing.T) {
	cards := board()
	r := NewRound(cards, t0)
	r.Select(0)
	r.Select(1)
	assert.False(t, cards[0].Matched)
}

func TestFormatTime(t *testing.T) {
	cases := map[time.Duration]string{
		0:                        "0:00.0",
		7300 * time.Millisecond:  "0:07.3",
		62 * time.Second:         "1:02.0",
		125990 * time.Millisecond: "2:05.9",
		-time.Second:             "0:00.0",
	}
	for d, want := range cases {
		assert.Equal(t, want, FormatTime(d), "duration %v", d)
	}
}
