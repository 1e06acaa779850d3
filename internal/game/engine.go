package game

import (
	"context"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/verte-zerg/vocabquest/internal/generator"
	"github.com/verte-zerg/vocabquest/internal/leaderboard"
	"github.com/verte-zerg/vocabquest/internal/match"
	"github.com/verte-zerg/vocabquest/internal/model"
	"github.com/verte-zerg/vocabquest/internal/spelling"
	"github.com/verte-zerg/vocabquest/internal/vocab"
)

// Count limits and defaults.
const (
	MinCount             = 1
	MaxCount             = 50
	DefaultSpellingCount = 10
	DefaultSingleCount   = 10
	DefaultDualCount     = 9
	DefaultDiceMax       = 35
	MaxDice              = 99
	ChallengerDigits     = 5
)

var (
	SpellingPresets = []int{5, 10, 15}
	SinglePresets   = []int{10, 12}
	DualPresets     = []int{9, 12}
)

// Notices shown on the current screen.
const (
	NoticeNoLesson      = "Choose a lesson first"
	NoticeUnknownLesson = "Unknown lesson"
	NoticeCountRange    = "Enter a number between 1 and 50"
	NoticeChallenger    = "Enter a 5-digit student ID (class + seat number)"
	NoticeNotEnough     = "Not enough vocabulary in this lesson"
)

// Config holds the game defaults.
type Config struct {
	Lesson        string
	SpellingCount int
	SingleCount   int
	DualCount     int
	DiceMax       int
	WeakFactor    float64
}

func (c Config) normalized() Config {
	if !validCount(c.SpellingCount) {
		c.SpellingCount = DefaultSpellingCount
	}
	if !validCount(c.SingleCount) {
		c.SingleCount = DefaultSingleCount
	}
	if !validCount(c.DualCount) {
		c.DualCount = DefaultDualCount
	}
	if c.DiceMax < 1 || c.DiceMax > MaxDice {
		c.DiceMax = DefaultDiceMax
	}
	if c.WeakFactor < 0 {
		c.WeakFactor = 0
	}
	return c
}

func validCount(n int) bool {
	return n >= MinCount && n <= MaxCount
}

// ValidChallenger reports whether id is a student ID of exactly five digits.
func ValidChallenger(id string) bool {
	if len(id) != ChallengerDigits {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Engine owns the active screen and applies actions to it.
type Engine struct {
	cfg     Config
	lessons []model.Lesson
	lesson  string
	mode    Mode

	gen   *generator.Generator
	board *leaderboard.Board
	weak  map[string]int

	flow     *fsm.FSM
	state    State
	timers   *timers
	quitting bool
	notice   string

	now func() time.Time
	log *zap.Logger
}

// New returns an engine on the home screen.
func New(cfg Config, lessons []model.Lesson, gen *generator.Generator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gen == nil {
		gen = generator.New()
	}
	e := &Engine{
		cfg:     cfg.normalized(),
		lessons: lessons,
		gen:     gen,
		board:   leaderboard.New(),
		weak:    make(map[string]int),
		timers:  newTimers(),
		now:     time.Now,
		log:     logger,
	}
	e.flow = newFlow(e)
	e.state = &HomeScreen{}
	if _, ok := vocab.Find(lessons, cfg.Lesson); ok {
		e.lesson = cfg.Lesson
	}
	return e
}

// SetClock replaces the wall clock.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// State returns the active screen.
func (e *Engine) State() State {
	return e.state
}

// Kind returns the active screen kind as tracked by the transition table.
func (e *Engine) Kind() Kind {
	return kindFromName(e.flow.Current())
}

// Lessons returns the catalogue.
func (e *Engine) Lessons() []model.Lesson {
	return e.lessons
}

// Lesson returns the selected lesson.
func (e *Engine) Lesson() (model.Lesson, bool) {
	if e.lesson == "" {
		return model.Lesson{}, false
	}
	return vocab.Find(e.lessons, e.lesson)
}

// Leaderboard returns the results of the current challenge session.
func (e *Engine) Leaderboard() []model.LeaderboardEntry {
	return e.board.Entries()
}

// Notice returns the message for the last rejected action, if any.
func (e *Engine) Notice() string {
	return e.notice
}

// Quitting reports whether the quit confirmation is open.
func (e *Engine) Quitting() bool {
	return e.quitting
}

// ArmedTimers lists the live timer kinds.
func (e *Engine) ArmedTimers() []TimerKind {
	return e.timers.kinds()
}

// Mistakes returns how often a word was misspelled in this process.
func (e *Engine) Mistakes(word string) int {
	return e.weak[word]
}

// Config returns the normalized defaults.
func (e *Engine) Config() Config {
	return e.cfg
}

// Dispatch applies one action and returns the timers it armed.
// Actions that the active screen does not accept are ignored.
func (e *Engine) Dispatch(a Action) []Timer {
	if _, ok := a.(TimerFired); !ok {
		e.notice = ""
	}
	if e.quitting {
		switch a.(type) {
		case CancelQuit, ConfirmQuit, TimerFired:
		default:
			return nil
		}
	}

	switch a := a.(type) {
	case ChooseLesson:
		e.chooseLesson(a.Key)
	case OpenLessons:
		if s, ok := e.state.(*HomeScreen); ok {
			s.PickerOpen = true
		}
	case MoveCarousel:
		if s, ok := e.state.(*HomeScreen); ok && !s.PickerOpen {
			s.Mode = Mode(((int(s.Mode)+a.Delta)%2 + 2) % 2)
			e.mode = s.Mode
		}
	case StartMode:
		e.startMode()
	case Back:
		e.back()
	case SetCount:
		e.setCount(a.Count)

	case StartSpelling:
		return e.startSpelling()
	case TypeLetter:
		return e.typeLetter(a.Letter)
	case Backspace:
		if s, ok := e.state.(*SpellingPlayingScreen); ok {
			s.Session.Backspace()
		}
	case BuyHint:
		if s, ok := e.state.(*SpellingPlayingScreen); ok {
			s.Session.BuyHint()
		}
	case NextQuestion:
		return e.nextQuestion()
	case ShowExample:
		if s, ok := e.state.(*SpellingPlayingScreen); ok {
			s.Session.ShowExample()
		}
	case CloseExample:
		if s, ok := e.state.(*SpellingPlayingScreen); ok {
			s.Session.CloseExample()
		}

	case ChooseSingle:
		if e.flow.Can(evOpenSingle) {
			e.enter(evOpenSingle, &MatchingSingleSetupScreen{Count: e.cfg.SingleCount})
		}
	case ChooseDual:
		if e.flow.Can(evOpenDual) {
			e.enter(evOpenDual, &MatchingDualSetupScreen{Count: e.cfg.DualCount, DiceMax: e.cfg.DiceMax})
		}
	case ConfirmSingleSetup:
		if s, ok := e.state.(*MatchingSingleSetupScreen); ok {
			e.board.Reset()
			e.enter(evConfirmSingle, &MatchingSinglePlayerEntryScreen{Count: s.Count})
		}
	case StartChallenge:
		return e.startChallenge(a.Challenger)
	case SelectCard:
		return e.selectCard(a.Player, a.Index)
	case FinishChallenge:
		if s, ok := e.state.(*MatchingSinglePlayingScreen); ok && s.Round.Complete() {
			e.finishChallenge(s)
		}
	case NextChallenger:
		if s, ok := e.state.(*MatchingSingleResultScreen); ok {
			e.enter(evNextChallenger, &MatchingSinglePlayerEntryScreen{Count: s.Count})
		}

	case SetDiceMax:
		if s, ok := e.state.(*MatchingDualSetupScreen); ok && a.Max >= 0 && a.Max <= MaxDice {
			s.DiceMax = a.Max
		}
	case RollDice:
		return e.rollDice(a.Times)
	case StartDuel:
		return e.startDuel()
	case FinishDuel:
		if s, ok := e.state.(*MatchingDualPlayingScreen); ok && s.Duel.Winner() != match.NoPlayer {
			e.finishDuel(s)
		}

	case RequestQuit:
		if e.state.Kind().Playing() {
			e.quitting = true
		}
	case CancelQuit:
		e.quitting = false
	case ConfirmQuit:
		if e.quitting {
			kind := e.state.Kind()
			if e.enter(evHome, &HomeScreen{Mode: e.mode}) {
				e.log.Info("round aborted", zap.Stringer("screen", kind))
			}
		}

	case TimerFired:
		return e.timerFired(a)
	}
	return nil
}

// enter moves to next through the transition table.
func (e *Engine) enter(event string, next State) bool {
	if err := e.flow.Event(context.Background(), event); err != nil {
		e.log.Debug("transition refused",
			zap.String("event", event),
			zap.String("from", e.flow.Current()),
			zap.Error(err),
		)
		return false
	}
	e.state = next
	return true
}

func (e *Engine) chooseLesson(key string) {
	s, ok := e.state.(*HomeScreen)
	if !ok {
		return
	}
	if _, found := vocab.Find(e.lessons, key); !found {
		e.notice = NoticeUnknownLesson
		return
	}
	e.lesson = key
	s.PickerOpen = false
	e.log.Info("lesson selected", zap.String("lesson", key))
}

func (e *Engine) startMode() {
	s, ok := e.state.(*HomeScreen)
	if !ok {
		return
	}
	if _, ok := e.Lesson(); !ok {
		s.PickerOpen = true
		e.notice = NoticeNoLesson
		return
	}
	e.mode = s.Mode
	switch s.Mode {
	case ModeMatching:
		e.enter(evOpenMatching, &MatchingMenuScreen{})
	default:
		e.enter(evOpenSpelling, &SpellingSetupScreen{Count: e.cfg.SpellingCount})
	}
}

func (e *Engine) back() {
	switch s := e.state.(type) {
	case *HomeScreen:
		s.PickerOpen = false
	case *SpellingSetupScreen, *SpellingReviewScreen, *MatchingMenuScreen:
		e.enter(evHome, &HomeScreen{Mode: e.mode})
	case *MatchingSingleSetupScreen, *MatchingSinglePlayerEntryScreen, *MatchingDualSetupScreen,
		*MatchingSingleResultScreen, *MatchingDualResultScreen:
		e.enter(evBackToMenu, &MatchingMenuScreen{})
	}
}

func (e *Engine) setCount(n int) {
	var count *int
	switch s := e.state.(type) {
	case *SpellingSetupScreen:
		count = &s.Count
	case *MatchingSingleSetupScreen:
		count = &s.Count
	case *MatchingDualSetupScreen:
		count = &s.Count
	default:
		return
	}
	if !validCount(n) {
		e.notice = NoticeCountRange
		return
	}
	*count = n
}

func (e *Engine) startSpelling() []Timer {
	s, ok := e.state.(*SpellingSetupScreen)
	if !ok {
		return nil
	}
	lesson, ok := e.Lesson()
	if !ok {
		e.notice = NoticeNoLesson
		return nil
	}
	pool := vocab.Filter(lesson.Vocab, vocab.Spellable)
	if len(pool) == 0 {
		e.notice = NoticeNotEnough
		return nil
	}
	questions := e.gen.SmartShuffle(pool, s.Count, e.weak, e.cfg.WeakFactor)
	if !e.enter(evStartSpelling, &SpellingPlayingScreen{Session: spelling.NewSession(questions)}) {
		return nil
	}
	e.log.Info("spelling started", zap.String("lesson", lesson.Key), zap.Int("questions", len(questions)))
	return []Timer{e.timers.arm(HintReveal)}
}

func (e *Engine) typeLetter(r rune) []Timer {
	s, ok := e.state.(*SpellingPlayingScreen)
	if !ok || !s.Session.Type(r) {
		return nil
	}
	switch s.Session.Status() {
	case spelling.Wrong:
		q, _ := s.Session.Current()
		e.weak[q.Word]++
		return []Timer{e.timers.arm(WrongToast)}
	case spelling.Correct:
		e.timers.release(HintReveal)
	}
	return nil
}

func (e *Engine) nextQuestion() []Timer {
	s, ok := e.state.(*SpellingPlayingScreen)
	if !ok || s.Session.Status() != spelling.Correct {
		return nil
	}
	if s.Session.Next() {
		return []Timer{e.timers.arm(HintReveal)}
	}
	_, total := s.Session.Progress()
	review := &SpellingReviewScreen{Wrong: s.Session.Review(), Mistakes: s.Session.Mistakes(), Total: total}
	if e.enter(evFinishSpelling, review) {
		e.log.Info("spelling finished", zap.Int("questions", total), zap.Int("mistakes", review.Mistakes))
	}
	return nil
}

func (e *Engine) deal(count int) []model.MatchingCard {
	lesson, ok := e.Lesson()
	if !ok {
		e.notice = NoticeNoLesson
		return nil
	}
	cards := e.gen.MatchingCards(count, lesson.Vocab)
	if len(cards) == 0 {
		e.notice = NoticeNotEnough
		return nil
	}
	if len(cards)/2 < count {
		e.log.Info("lesson too small for requested pairs",
			zap.String("lesson", lesson.Key),
			zap.Int("requested", count),
			zap.Int("dealt", len(cards)/2),
		)
	}
	return cards
}

func (e *Engine) startChallenge(challenger string) []Timer {
	s, ok := e.state.(*MatchingSinglePlayerEntryScreen)
	if !ok {
		return nil
	}
	if !ValidChallenger(challenger) {
		e.notice = NoticeChallenger
		return nil
	}
	cards := e.deal(s.Count)
	if cards == nil {
		return nil
	}
	next := &MatchingSinglePlayingScreen{
		Round:      match.NewRound(cards, e.now()),
		Challenger: challenger,
		Count:      s.Count,
	}
	if !e.enter(evStartChallenge, next) {
		return nil
	}
	return []Timer{e.timers.arm(ElapsedTick)}
}

func (e *Engine) selectCard(p match.Player, i int) []Timer {
	switch s := e.state.(type) {
	case *MatchingSinglePlayingScreen:
		switch s.Round.Select(i) {
		case match.Mismatched:
			return []Timer{e.timers.arm(MismatchP1)}
		case match.Matched:
			if s.Round.Complete() {
				e.finishChallenge(s)
			}
		}
	case *MatchingDualPlayingScreen:
		before := s.Duel.Winner()
		switch s.Duel.Select(p, i, e.now()) {
		case match.Mismatched:
			if p == match.P2 {
				return []Timer{e.timers.arm(MismatchP2)}
			}
			return []Timer{e.timers.arm(MismatchP1)}
		case match.Matched:
			if before == match.NoPlayer && s.Duel.Winner() != match.NoPlayer {
				e.log.Info("duel won",
					zap.Stringer("winner", s.Duel.Winner()),
					zap.Duration("time", s.Duel.Round(p).Elapsed(e.now())),
				)
			}
			if s.Duel.Done() {
				e.finishDuel(s)
			}
		}
	}
	return nil
}

func (e *Engine) finishChallenge(s *MatchingSinglePlayingScreen) {
	now := e.now()
	s.Round.Finish(now)
	taken := s.Round.Elapsed(now)
	e.board.Record(s.Challenger, taken)
	result := &MatchingSingleResultScreen{
		Challenger: s.Challenger,
		TimeTaken:  taken,
		Rank:       e.board.Rank(s.Challenger, taken),
		Count:      s.Count,
	}
	if e.enter(evFinishChallenge, result) {
		e.log.Info("challenge finished",
			zap.String("challenger", s.Challenger),
			zap.Duration("time", taken),
			zap.Int("rank", result.Rank),
		)
	}
}

func (e *Engine) rollDice(times int) []Timer {
	s, ok := e.state.(*MatchingDualSetupScreen)
	if !ok || s.Rolling || times < 1 || times > 2 {
		return nil
	}
	s.pending = e.gen.RollDice(s.DiceMax, times)
	s.Dice = nil
	s.Rolling = true
	return []Timer{e.timers.arm(DiceRoll)}
}

func (e *Engine) startDuel() []Timer {
	s, ok := e.state.(*MatchingDualSetupScreen)
	if !ok {
		return nil
	}
	cards := e.deal(s.Count)
	if cards == nil {
		return nil
	}
	next := &MatchingDualPlayingScreen{
		Duel:  match.NewDuel(cards, e.gen.CloneShuffled(cards), e.now()),
		Count: s.Count,
	}
	if !e.enter(evStartDuel, next) {
		return nil
	}
	return []Timer{e.timers.arm(ElapsedTick)}
}

func (e *Engine) finishDuel(s *MatchingDualPlayingScreen) {
	now := e.now()
	p1, p2 := s.Duel.Round(match.P1), s.Duel.Round(match.P2)
	result := &MatchingDualResultScreen{
		Winner: s.Duel.Winner(),
		P1Time: p1.Elapsed(now),
		P2Time: p2.Elapsed(now),
		P1Done: p1.Complete(),
		P2Done: p2.Complete(),
	}
	e.enter(evFinishDuel, result)
}

func (e *Engine) timerFired(t TimerFired) []Timer {
	if !e.timers.take(t.Kind, t.Seq) {
		return nil
	}
	switch t.Kind {
	case ElapsedTick:
		now := e.now()
		switch s := e.state.(type) {
		case *MatchingSinglePlayingScreen:
			s.Elapsed = s.Round.Elapsed(now)
			return []Timer{e.timers.arm(ElapsedTick)}
		case *MatchingDualPlayingScreen:
			s.P1Elapsed = s.Duel.Round(match.P1).Elapsed(now)
			s.P2Elapsed = s.Duel.Round(match.P2).Elapsed(now)
			if !s.Duel.Done() {
				return []Timer{e.timers.arm(ElapsedTick)}
			}
		}
	case HintReveal:
		if s, ok := e.state.(*SpellingPlayingScreen); ok {
			s.Session.RevealDefinition()
		}
	case WrongToast:
		if s, ok := e.state.(*SpellingPlayingScreen); ok {
			s.Session.ClearWrong()
		}
	case MismatchP1, MismatchP2:
		e.clearMismatch(t.Kind)
	case DiceRoll:
		if s, ok := e.state.(*MatchingDualSetupScreen); ok {
			s.Dice = s.pending
			s.pending = nil
			s.Rolling = false
		}
	}
	return nil
}

func (e *Engine) clearMismatch(kind TimerKind) {
	switch s := e.state.(type) {
	case *MatchingSinglePlayingScreen:
		s.Round.ClearPending()
	case *MatchingDualPlayingScreen:
		p := match.P1
		if kind == MismatchP2 {
			p = match.P2
		}
		s.Duel.Round(p).ClearPending()
	}
}
