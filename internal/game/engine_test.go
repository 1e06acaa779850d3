package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verte-zerg/vocabquest/internal/generator"
	"github.com/verte-zerg/vocabquest/internal/match"
	"github.com/verte-zerg/vocabquest/internal/model"
	"github.com/verte-zerg/vocabquest/internal/spelling"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testLessons() []model.Lesson {
	words := []struct{ word, def string }{
		{"apple", "(n.) 蘋果"}, {"banana", "(n.) 香蕉"}, {"cherry", "(n.) 櫻桃"},
		{"grape", "(n.) 葡萄"}, {"lemon", "(n.) 檸檬"}, {"mango", "(n.) 芒果"},
		{"melon", "(n.) 甜瓜"}, {"peach", "(n.) 桃子"}, {"pear", "(n.) 梨子"},
		{"plum", "(n.) 李子"}, {"kiwi", "(n.) 奇異果"}, {"lime", "(n.) 萊姆"},
	}
	fruit := model.Lesson{Key: "T-1", Title: "Fruit"}
	for _, w := range words {
		fruit.Vocab = append(fruit.Vocab, model.VocabularyItem{
			Word:       w.word,
			Definition: w.def,
			EnglishDef: "a kind of fruit",
			Example:    &model.Example{Sentence: "I like it.", Translation: "我喜歡它。"},
		})
	}
	phrases := model.Lesson{Key: "T-2", Title: "Phrases", Vocab: []model.VocabularyItem{
		{Word: "ice cream", Definition: "(n.) 冰淇淋"},
	}}
	return []model.Lesson{fruit, phrases}
}

func newEngine(t *testing.T) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)}
	e := New(Config{Lesson: "T-1"}, testLessons(), generator.NewWithSeed(7), zap.NewNop())
	e.SetClock(clock.Now)
	return e, clock
}

func requireKind(t *testing.T, e *Engine, want Kind) {
	t.Helper()
	require.Equal(t, want, e.State().Kind())
	require.Equal(t, want, e.Kind(), "transition table and screen disagree")
}

func timerOf(t *testing.T, timers []Timer, kind TimerKind) Timer {
	t.Helper()
	for _, tm := range timers {
		if tm.Kind == kind {
			return tm
		}
	}
	t.Fatalf("no %s timer in %v", kind, timers)
	return Timer{}
}

func toSingleEntry(t *testing.T, e *Engine, count int) {
	t.Helper()
	e.Dispatch(MoveCarousel{Delta: 1})
	e.Dispatch(StartMode{})
	requireKind(t, e, MatchingMenu)
	e.Dispatch(ChooseSingle{})
	requireKind(t, e, MatchingSingleSetup)
	e.Dispatch(SetCount{Count: count})
	e.Dispatch(ConfirmSingleSetup{})
	requireKind(t, e, MatchingSinglePlayerEntry)
}

func toDualSetup(t *testing.T, e *Engine) {
	t.Helper()
	e.Dispatch(MoveCarousel{Delta: -1})
	e.Dispatch(StartMode{})
	e.Dispatch(ChooseDual{})
	requireKind(t, e, MatchingDualSetup)
}

func toSpelling(t *testing.T, e *Engine, count int) []Timer {
	t.Helper()
	e.Dispatch(StartMode{})
	requireKind(t, e, SpellingSetup)
	e.Dispatch(SetCount{Count: count})
	timers := e.Dispatch(StartSpelling{})
	requireKind(t, e, SpellingPlaying)
	return timers
}

// solve matches every pair of r through dispatch, player p.
func solve(e *Engine, r *match.Round, p match.Player) {
	for i, c := range r.Cards() {
		if c.Side != model.SideEnglish {
			continue
		}
		for j, other := range r.Cards() {
			if other.Key == c.Key && other.Side == model.SideChinese {
				e.Dispatch(SelectCard{Player: p, Index: i})
				e.Dispatch(SelectCard{Player: p, Index: j})
				break
			}
		}
	}
}

func TestNewStartsHome(t *testing.T) {
	e, _ := newEngine(t)
	requireKind(t, e, Home)
	lesson, ok := e.Lesson()
	require.True(t, ok)
	assert.Equal(t, "T-1", lesson.Key)
	assert.Empty(t, e.ArmedTimers())

	cfg := e.Config()
	assert.Equal(t, DefaultSpellingCount, cfg.SpellingCount)
	assert.Equal(t, DefaultSingleCount, cfg.SingleCount)
	assert.Equal(t, DefaultDualCount, cfg.DualCount)
	assert.Equal(t, DefaultDiceMax, cfg.DiceMax)
}

func TestStartModeWithoutLessonOpensPicker(t *testing.T) {
	e := New(Config{}, testLessons(), generator.NewWithSeed(1), nil)
	e.Dispatch(StartMode{})
	requireKind(t, e, Home)
	assert.True(t, e.State().(*HomeScreen).PickerOpen)
	assert.Equal(t, NoticeNoLesson, e.Notice())

	e.Dispatch(ChooseLesson{Key: "nope"})
	assert.Equal(t, NoticeUnknownLesson, e.Notice())
	e.Dispatch(ChooseLesson{Key: "T-2"})
	assert.False(t, e.State().(*HomeScreen).PickerOpen)
	assert.Empty(t, e.Notice())
	lesson, ok := e.Lesson()
	require.True(t, ok)
	assert.Equal(t, "T-2", lesson.Key)
}

func TestDisallowedActionsAreIgnored(t *testing.T) {
	e, _ := newEngine(t)
	for _, a := range []Action{
		StartSpelling{}, TypeLetter{Letter: 'a'}, NextQuestion{}, ConfirmSingleSetup{},
		StartChallenge{Challenger: "30105"}, SelectCard{Index: 0}, FinishChallenge{},
		NextChallenger{}, StartDuel{}, FinishDuel{}, RollDice{Times: 1}, RequestQuit{},
		ConfirmQuit{}, ChooseSingle{}, ChooseDual{}, SetCount{Count: 3},
	} {
		assert.Empty(t, e.Dispatch(a), "%T", a)
		requireKind(t, e, Home)
	}
	assert.False(t, e.Quitting())

	toSingleEntry(t, e, 2)
	e.Dispatch(StartSpelling{})
	e.Dispatch(FinishDuel{})
	requireKind(t, e, MatchingSinglePlayerEntry)
}

func TestSetCountValidation(t *testing.T) {
	e, _ := newEngine(t)
	e.Dispatch(StartMode{})
	requireKind(t, e, SpellingSetup)
	s := e.State().(*SpellingSetupScreen)
	assert.Equal(t, DefaultSpellingCount, s.Count)

	for _, bad := range []int{0, -3, 51} {
		e.Dispatch(SetCount{Count: bad})
		assert.Equal(t, NoticeCountRange, e.Notice())
		assert.Equal(t, DefaultSpellingCount, s.Count)
	}
	e.Dispatch(SetCount{Count: 50})
	assert.Empty(t, e.Notice())
	assert.Equal(t, 50, s.Count)
}

func TestSpellingSessionToReview(t *testing.T) {
	e, _ := newEngine(t)
	timers := toSpelling(t, e, 3)
	timerOf(t, timers, HintReveal)

	s := e.State().(*SpellingPlayingScreen)
	first, ok := s.Session.Current()
	require.True(t, ok)

	wrong := e.Dispatch(TypeLetter{Letter: 'z'})
	assert.Empty(t, wrong)
	for range first.Word[1:] {
		timers = e.Dispatch(TypeLetter{Letter: 'z'})
	}
	require.Equal(t, spelling.Wrong, s.Session.Status())
	toast := timerOf(t, timers, WrongToast)
	assert.Equal(t, WrongToastDelay, toast.Delay)
	assert.Equal(t, 1, e.Mistakes(first.Word))

	e.Dispatch(toast.Fired())
	assert.Equal(t, spelling.Typing, s.Session.Status())
	assert.Empty(t, s.Session.Input())

	for i := 0; i < 3; i++ {
		q, ok := s.Session.Current()
		require.True(t, ok)
		for _, r := range q.Word {
			e.Dispatch(TypeLetter{Letter: r})
		}
		require.Equal(t, spelling.Correct, s.Session.Status())
		assert.NotContains(t, e.ArmedTimers(), HintReveal)
		timers = e.Dispatch(NextQuestion{})
		if i < 2 {
			timerOf(t, timers, HintReveal)
		}
	}
	requireKind(t, e, SpellingReview)
	review := e.State().(*SpellingReviewScreen)
	assert.Equal(t, 3, review.Total)
	assert.Equal(t, 1, review.Mistakes)
	require.Len(t, review.Wrong, 1)
	assert.Equal(t, first.Word, review.Wrong[0].Word)
	assert.Empty(t, e.ArmedTimers())

	e.Dispatch(Back{})
	requireKind(t, e, Home)
}

func TestSpellingNeedsSpellableWords(t *testing.T) {
	e, _ := newEngine(t)
	e.Dispatch(OpenLessons{})
	e.Dispatch(ChooseLesson{Key: "T-2"})
	e.Dispatch(StartMode{})
	assert.Empty(t, e.Dispatch(StartSpelling{}))
	requireKind(t, e, SpellingSetup)
	assert.Equal(t, NoticeNotEnough, e.Notice())
}

func TestHintRevealAndStaleHint(t *testing.T) {
	e, _ := newEngine(t)
	timers := toSpelling(t, e, 2)
	hint := timerOf(t, timers, HintReveal)
	assert.Equal(t, HintRevealDelay, hint.Delay)
	s := e.State().(*SpellingPlayingScreen)

	q, _ := s.Session.Current()
	for _, r := range q.Word {
		e.Dispatch(TypeLetter{Letter: r})
	}
	next := e.Dispatch(NextQuestion{})
	timerOf(t, next, HintReveal)

	e.Dispatch(hint.Fired())
	assert.False(t, s.Session.DefinitionRevealed(), "a hint armed for an earlier question is stale")

	e.Dispatch(timerOf(t, next, HintReveal).Fired())
	assert.True(t, s.Session.DefinitionRevealed())
}

func TestSingleChallengeRecordsLeaderboard(t *testing.T) {
	e, clock := newEngine(t)
	toSingleEntry(t, e, 4)

	for _, id := range []string{"", "1234", "123456", "12a45"} {
		assert.Empty(t, e.Dispatch(StartChallenge{Challenger: id}))
		assert.Equal(t, NoticeChallenger, e.Notice())
		requireKind(t, e, MatchingSinglePlayerEntry)
	}

	timers := e.Dispatch(StartChallenge{Challenger: "30105"})
	requireKind(t, e, MatchingSinglePlaying)
	timerOf(t, timers, ElapsedTick)
	playing := e.State().(*MatchingSinglePlayingScreen)
	require.Len(t, playing.Round.Cards(), 8)

	clock.Advance(12300 * time.Millisecond)
	solve(e, playing.Round, match.NoPlayer)
	requireKind(t, e, MatchingSingleResult)
	assert.Empty(t, e.ArmedTimers())
	result := e.State().(*MatchingSingleResultScreen)
	assert.Equal(t, 12300*time.Millisecond, result.TimeTaken)
	assert.Equal(t, 1, result.Rank)

	e.Dispatch(NextChallenger{})
	requireKind(t, e, MatchingSinglePlayerEntry)
	e.Dispatch(StartChallenge{Challenger: "30217"})
	playing = e.State().(*MatchingSinglePlayingScreen)
	clock.Advance(8 * time.Second)
	solve(e, playing.Round, match.NoPlayer)
	result = e.State().(*MatchingSingleResultScreen)
	assert.Equal(t, 1, result.Rank)

	board := e.Leaderboard()
	require.Len(t, board, 2)
	assert.Equal(t, "30217", board[0].Identifier)
	assert.Equal(t, "30105", board[1].Identifier)

	e.Dispatch(Back{})
	requireKind(t, e, MatchingMenu)
	e.Dispatch(ChooseSingle{})
	e.Dispatch(ConfirmSingleSetup{})
	assert.Empty(t, e.Leaderboard(), "a new challenge session starts empty")
}

func TestElapsedTickRecomputesFromClock(t *testing.T) {
	e, clock := newEngine(t)
	toSingleEntry(t, e, 2)
	tick := timerOf(t, e.Dispatch(StartChallenge{Challenger: "30105"}), ElapsedTick)
	assert.Equal(t, ElapsedTickDelay, tick.Delay)

	clock.Advance(730 * time.Millisecond)
	next := timerOf(t, e.Dispatch(tick.Fired()), ElapsedTick)
	playing := e.State().(*MatchingSinglePlayingScreen)
	assert.Equal(t, 730*time.Millisecond, playing.Elapsed)

	assert.Empty(t, e.Dispatch(tick.Fired()), "a consumed tick does not fire twice")
	clock.Advance(time.Second)
	e.Dispatch(next.Fired())
	assert.Equal(t, 1730*time.Millisecond, playing.Elapsed)
}

func TestMismatchClearsAfterTimer(t *testing.T) {
	e, _ := newEngine(t)
	toSingleEntry(t, e, 3)
	e.Dispatch(StartChallenge{Challenger: "30105"})
	playing := e.State().(*MatchingSinglePlayingScreen)

	cards := playing.Round.Cards()
	a, b := -1, -1
	for i := range cards {
		for j := range cards {
			if i != j && cards[i].Key != cards[j].Key {
				a, b = i, j
			}
		}
	}
	require.GreaterOrEqual(t, a, 0)
	assert.Empty(t, e.Dispatch(SelectCard{Index: a}))
	timers := e.Dispatch(SelectCard{Index: b})
	mismatch := timerOf(t, timers, MismatchP1)
	assert.Equal(t, MismatchDelay, mismatch.Delay)
	assert.Equal(t, 2, playing.Round.PendingCount())

	e.Dispatch(mismatch.Fired())
	assert.Equal(t, 0, playing.Round.PendingCount())
}

func TestQuitReleasesTimersFromEveryPlayingScreen(t *testing.T) {
	enter := map[Kind]func(t *testing.T, e *Engine) []Timer{
		SpellingPlaying: func(t *testing.T, e *Engine) []Timer {
			return toSpelling(t, e, 2)
		},
		MatchingSinglePlaying: func(t *testing.T, e *Engine) []Timer {
			toSingleEntry(t, e, 2)
			return e.Dispatch(StartChallenge{Challenger: "30105"})
		},
		MatchingDualPlaying: func(t *testing.T, e *Engine) []Timer {
			toDualSetup(t, e)
			return e.Dispatch(StartDuel{})
		},
	}
	for kind, start := range enter {
		t.Run(kind.String(), func(t *testing.T) {
			e, _ := newEngine(t)
			timers := start(t, e)
			requireKind(t, e, kind)
			require.NotEmpty(t, timers)
			require.NotEmpty(t, e.ArmedTimers())

			e.Dispatch(RequestQuit{})
			assert.True(t, e.Quitting())
			e.Dispatch(CancelQuit{})
			assert.False(t, e.Quitting())
			requireKind(t, e, kind)

			e.Dispatch(RequestQuit{})
			e.Dispatch(ConfirmQuit{})
			requireKind(t, e, Home)
			assert.False(t, e.Quitting())
			assert.Empty(t, e.ArmedTimers())

			for _, tm := range timers {
				assert.Empty(t, e.Dispatch(tm.Fired()))
			}
			requireKind(t, e, Home)
		})
	}
}

func TestQuitOverlayBlocksInput(t *testing.T) {
	e, _ := newEngine(t)
	toSingleEntry(t, e, 2)
	e.Dispatch(StartChallenge{Challenger: "30105"})
	playing := e.State().(*MatchingSinglePlayingScreen)

	e.Dispatch(RequestQuit{})
	e.Dispatch(SelectCard{Index: 0})
	assert.Equal(t, 0, playing.Round.PendingCount())
	e.Dispatch(Back{})
	requireKind(t, e, MatchingSinglePlaying)

	e.Dispatch(CancelQuit{})
	e.Dispatch(SelectCard{Index: 0})
	assert.Equal(t, 1, playing.Round.PendingCount())
}

func TestDuelWinnerIsFirstFinisher(t *testing.T) {
	e, clock := newEngine(t)
	toDualSetup(t, e)
	timerOf(t, e.Dispatch(StartDuel{}), ElapsedTick)
	requireKind(t, e, MatchingDualPlaying)
	duel := e.State().(*MatchingDualPlayingScreen)
	require.Equal(t, DefaultDualCount, duel.Count)
	require.Len(t, duel.Duel.Round(match.P1).Cards(), 18)

	e.Dispatch(FinishDuel{})
	requireKind(t, e, MatchingDualPlaying)

	clock.Advance(20 * time.Second)
	solve(e, duel.Duel.Round(match.P1), match.P1)
	assert.Equal(t, match.P1, duel.Winner())
	requireKind(t, e, MatchingDualPlaying)

	clock.Advance(5 * time.Second)
	solve(e, duel.Duel.Round(match.P2), match.P2)
	assert.Equal(t, match.P1, duel.Winner(), "winner is never overwritten")
	requireKind(t, e, MatchingDualResult)
	result := e.State().(*MatchingDualResultScreen)
	assert.Equal(t, match.P1, result.Winner)
	assert.Equal(t, 20*time.Second, result.P1Time)
	assert.Equal(t, 25*time.Second, result.P2Time)
	assert.True(t, result.P1Done)
	assert.True(t, result.P2Done)
	assert.Empty(t, e.ArmedTimers())

	e.Dispatch(Back{})
	requireKind(t, e, MatchingMenu)
}

func TestDuelMismatchTimersPerSide(t *testing.T) {
	e, _ := newEngine(t)
	toDualSetup(t, e)
	e.Dispatch(StartDuel{})
	duel := e.State().(*MatchingDualPlayingScreen)

	pickMismatch := func(r *match.Round) (int, int) {
		cards := r.Cards()
		for j := 1; j < len(cards); j++ {
			if cards[j].Key != cards[0].Key {
				return 0, j
			}
		}
		return -1, -1
	}
	a, b := pickMismatch(duel.Duel.Round(match.P2))
	e.Dispatch(SelectCard{Player: match.P2, Index: a})
	p2 := timerOf(t, e.Dispatch(SelectCard{Player: match.P2, Index: b}), MismatchP2)
	e.Dispatch(SelectCard{Player: match.P1, Index: 0})

	e.Dispatch(p2.Fired())
	assert.Equal(t, 0, duel.Duel.Round(match.P2).PendingCount())
	assert.Equal(t, 1, duel.Duel.Round(match.P1).PendingCount())
}

func TestRollDice(t *testing.T) {
	e, _ := newEngine(t)
	toDualSetup(t, e)
	setup := e.State().(*MatchingDualSetupScreen)

	assert.Empty(t, e.Dispatch(RollDice{Times: 3}))
	e.Dispatch(SetDiceMax{Max: 12})
	assert.Equal(t, 12, setup.DiceMax)

	roll := timerOf(t, e.Dispatch(RollDice{Times: 2}), DiceRoll)
	assert.Equal(t, DiceRollDelay, roll.Delay)
	assert.True(t, setup.Rolling)
	assert.Empty(t, setup.Dice)
	assert.Empty(t, e.Dispatch(RollDice{Times: 1}), "one roll at a time")

	e.Dispatch(roll.Fired())
	assert.False(t, setup.Rolling)
	require.Len(t, setup.Dice, 2)
	for _, d := range setup.Dice {
		assert.GreaterOrEqual(t, d, 1)
		assert.LessOrEqual(t, d, 12)
	}
}

func TestBackLeavesDiceRollStale(t *testing.T) {
	e, _ := newEngine(t)
	toDualSetup(t, e)
	roll := timerOf(t, e.Dispatch(RollDice{Times: 1}), DiceRoll)
	e.Dispatch(Back{})
	requireKind(t, e, MatchingMenu)
	assert.Empty(t, e.ArmedTimers())
	e.Dispatch(roll.Fired())
	requireKind(t, e, MatchingMenu)
}

func TestTooSmallLessonDealsFewerPairs(t *testing.T) {
	e, _ := newEngine(t)
	e.Dispatch(ChooseLesson{Key: "T-2"})
	toSingleEntry(t, e, 5)
	e.Dispatch(StartChallenge{Challenger: "30105"})
	requireKind(t, e, MatchingSinglePlaying)
	playing := e.State().(*MatchingSinglePlayingScreen)
	assert.Equal(t, 1, playing.Round.Pairs())

	solve(e, playing.Round, match.NoPlayer)
	requireKind(t, e, MatchingSingleResult)
}

func TestEmptyLessonGivesNotice(t *testing.T) {
	lessons := append(testLessons(), model.Lesson{Key: "T-3", Title: "Empty"})
	e := New(Config{Lesson: "T-3"}, lessons, generator.NewWithSeed(2), zap.NewNop())
	toDualSetup(t, e)
	assert.Empty(t, e.Dispatch(StartDuel{}))
	assert.Equal(t, NoticeNotEnough, e.Notice())
	requireKind(t, e, MatchingDualSetup)
}

func TestValidChallenger(t *testing.T) {
	assert.True(t, ValidChallenger("30105"))
	assert.True(t, ValidChallenger("00000"))
	assert.False(t, ValidChallenger("３０１０５"))
	assert.False(t, ValidChallenger("3010"))
	assert.False(t, ValidChallenger(" 30105"))
}

func TestKindNames(t *testing.T) {
	seen := map[string]bool{}
	for k := Home; k <= MatchingDualResult; k++ {
		name := k.String()
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
		assert.Equal(t, k, kindFromName(name))
	}
	assert.Len(t, seen, 12)
	assert.Equal(t, "unknown", Kind(99).String())
}
