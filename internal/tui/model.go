// Package tui provides the Bubble Tea game interface.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/vocabquest/internal/auth"
	"github.com/verte-zerg/vocabquest/internal/game"
	"github.com/verte-zerg/vocabquest/internal/match"
	"github.com/verte-zerg/vocabquest/internal/model"
	"github.com/verte-zerg/vocabquest/internal/spelling"
	"github.com/verte-zerg/vocabquest/internal/vocab"
)

// timerMsg delivers an elapsed engine timer back to Update.
type timerMsg struct {
	timer game.Timer
}

type inputTarget int

const (
	inputNone inputTarget = iota
	inputCount
	inputDiceMax
)

// Model implements the Bubble Tea game UI.
type Model struct {
	engine *game.Engine
	gate   *auth.Gate
	log    *zap.Logger

	locked     bool
	gateNotice string
	password   textinput.Model

	challenger textinput.Model
	number     textinput.Model
	editing    inputTarget
	inputErr   string

	bookIndex   int
	lessonIndex int
	menuIndex   int
	cursors     [2]int

	schedule func(game.Timer) tea.Cmd

	width  int
	height int
}

// NewModel constructs the game UI around an engine. A nil or disabled gate
// starts on the home screen.
func NewModel(engine *game.Engine, gate *auth.Gate, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		engine:     engine,
		gate:       gate,
		log:        logger,
		locked:     gate.Enabled(),
		password:   newInput("Password: ", 64),
		challenger: newInput("Student ID: ", game.ChallengerDigits),
		number:     newInput("> ", 2),
		schedule:   tick,
	}
	m.password.EchoMode = textinput.EchoPassword
	m.password.EchoCharacter = '•'
	m.challenger.Placeholder = "30217"
	if m.locked {
		m.password.Focus()
	}
	m.syncPicker()
	return m
}

func newInput(prompt string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = limit
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func tick(t game.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return timerMsg{timer: t}
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.locked {
		return textinput.Blink
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case timerMsg:
		return m, m.dispatch(msg.timer.Fired())
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.inputErr = ""
		switch {
		case m.locked:
			return m, m.updateGate(msg)
		case m.engine.Quitting():
			return m, m.updateQuit(msg)
		case m.editing != inputNone:
			return m, m.updateNumber(msg)
		}
		return m, m.updateScreen(msg)
	default:
		return m, m.updateFocused(msg)
	}
}

// dispatch applies an action and schedules the timers it armed.
func (m *Model) dispatch(a game.Action) tea.Cmd {
	before := m.engine.State()
	timers := m.engine.Dispatch(a)
	cmds := make([]tea.Cmd, 0, len(timers)+1)
	if m.engine.State() != before {
		cmds = append(cmds, m.entered())
	}
	for _, t := range timers {
		cmds = append(cmds, m.schedule(t))
	}
	return tea.Batch(cmds...)
}

// entered resets per-screen UI state after a transition.
func (m *Model) entered() tea.Cmd {
	m.cursors = [2]int{}
	m.menuIndex = 0
	m.closeNumber()
	m.challenger.Blur()
	switch m.engine.State().(type) {
	case *game.HomeScreen:
		m.syncPicker()
	case *game.MatchingSinglePlayerEntryScreen:
		m.challenger.Reset()
		return m.challenger.Focus()
	}
	return nil
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.locked:
		m.password, cmd = m.password.Update(msg)
	case m.editing != inputNone:
		m.number, cmd = m.number.Update(msg)
	case m.challenger.Focused():
		m.challenger, cmd = m.challenger.Update(msg)
	}
	return cmd
}

func (m *Model) updateGate(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyEnter {
		m.gateNotice = ""
		var cmd tea.Cmd
		m.password, cmd = m.password.Update(msg)
		return cmd
	}
	err := m.gate.Check(m.password.Value())
	m.password.Reset()
	if err != nil {
		m.gateNotice = auth.MessageIncorrect
		m.log.Warn("password rejected")
		return nil
	}
	m.locked = false
	m.gateNotice = ""
	m.password.Blur()
	m.log.Info("password accepted")
	return nil
}

func (m *Model) updateQuit(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		return m.dispatch(game.ConfirmQuit{})
	case "n", "esc":
		return m.dispatch(game.CancelQuit{})
	}
	return nil
}

func (m *Model) openNumber(target inputTarget) tea.Cmd {
	m.editing = target
	m.number.Reset()
	return m.number.Focus()
}

func (m *Model) closeNumber() {
	m.editing = inputNone
	m.number.Blur()
}

func (m *Model) updateNumber(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeNumber()
		return nil
	case tea.KeyEnter:
		target := m.editing
		n, err := strconv.Atoi(strings.TrimSpace(m.number.Value()))
		if err != nil {
			n = -1
		}
		m.closeNumber()
		if target == inputDiceMax {
			if n < 0 || n > game.MaxDice {
				m.inputErr = fmt.Sprintf("Enter a number between 0 and %d", game.MaxDice)
				return nil
			}
			return m.dispatch(game.SetDiceMax{Max: n})
		}
		return m.dispatch(game.SetCount{Count: n})
	}
	var cmd tea.Cmd
	m.number, cmd = m.number.Update(msg)
	return cmd
}

func (m *Model) updateScreen(msg tea.KeyMsg) tea.Cmd {
	switch s := m.engine.State().(type) {
	case *game.HomeScreen:
		return m.updateHome(s, msg)
	case *game.SpellingSetupScreen:
		return m.updateSetup(msg, game.SpellingPresets, game.StartSpelling{})
	case *game.SpellingPlayingScreen:
		return m.updateSpelling(s.Session, msg)
	case *game.SpellingReviewScreen, *game.MatchingDualResultScreen:
		switch msg.String() {
		case "enter", "esc":
			return m.dispatch(game.Back{})
		}
	case *game.MatchingMenuScreen:
		return m.updateMenu(msg)
	case *game.MatchingSingleSetupScreen:
		return m.updateSetup(msg, game.SinglePresets, game.ConfirmSingleSetup{})
	case *game.MatchingSinglePlayerEntryScreen:
		switch msg.Type {
		case tea.KeyEnter:
			return m.dispatch(game.StartChallenge{Challenger: strings.TrimSpace(m.challenger.Value())})
		case tea.KeyEsc:
			return m.dispatch(game.Back{})
		}
		var cmd tea.Cmd
		m.challenger, cmd = m.challenger.Update(msg)
		return cmd
	case *game.MatchingSinglePlayingScreen:
		key := msg.String()
		switch key {
		case "esc":
			return m.dispatch(game.RequestQuit{})
		case "enter", " ":
			return m.dispatch(game.SelectCard{Player: match.P1, Index: m.cursors[0]})
		}
		m.moveBoardCursor(0, len(s.Round.Cards()), key, "left", "right", "up", "down")
		m.moveBoardCursor(0, len(s.Round.Cards()), key, "h", "l", "k", "j")
	case *game.MatchingSingleResultScreen:
		switch msg.String() {
		case "enter":
			return m.dispatch(game.NextChallenger{})
		case "esc":
			return m.dispatch(game.Back{})
		}
	case *game.MatchingDualSetupScreen:
		switch msg.String() {
		case "r":
			return m.dispatch(game.RollDice{Times: 1})
		case "R":
			return m.dispatch(game.RollDice{Times: 2})
		case "m":
			return m.openNumber(inputDiceMax)
		}
		return m.updateSetup(msg, game.DualPresets, game.StartDuel{})
	case *game.MatchingDualPlayingScreen:
		return m.updateDuel(s, msg)
	}
	return nil
}

func (m *Model) updateHome(s *game.HomeScreen, msg tea.KeyMsg) tea.Cmd {
	if s.PickerOpen {
		return m.updatePicker(msg)
	}
	switch msg.String() {
	case "left", "h":
		return m.dispatch(game.MoveCarousel{Delta: -1})
	case "right", "l":
		return m.dispatch(game.MoveCarousel{Delta: 1})
	case "enter", " ":
		cmd := m.dispatch(game.StartMode{})
		m.syncPicker()
		return cmd
	case "p":
		m.syncPicker()
		return m.dispatch(game.OpenLessons{})
	case "q":
		return tea.Quit
	}
	return nil
}

// bookLessons returns the books and the lessons of the selected book tab.
func (m *Model) bookLessons() ([]string, []model.Lesson) {
	lessons := m.engine.Lessons()
	books := vocab.Books(lessons)
	if len(books) == 0 {
		return nil, nil
	}
	if m.bookIndex >= len(books) {
		m.bookIndex = 0
	}
	var shelf []model.Lesson
	for _, l := range lessons {
		if l.Book() == books[m.bookIndex] {
			shelf = append(shelf, l)
		}
	}
	return books, shelf
}

// syncPicker points the picker at the selected lesson.
func (m *Model) syncPicker() {
	current, ok := m.engine.Lesson()
	if !ok {
		return
	}
	books := vocab.Books(m.engine.Lessons())
	for i, b := range books {
		if b == current.Book() {
			m.bookIndex = i
		}
	}
	_, shelf := m.bookLessons()
	for i, l := range shelf {
		if l.Key == current.Key {
			m.lessonIndex = i
		}
	}
}

func (m *Model) updatePicker(msg tea.KeyMsg) tea.Cmd {
	books, shelf := m.bookLessons()
	switch msg.String() {
	case "esc":
		return m.dispatch(game.Back{})
	case "tab", "right", "l":
		if len(books) > 0 {
			m.bookIndex = (m.bookIndex + 1) % len(books)
			m.lessonIndex = 0
		}
	case "shift+tab", "left", "h":
		if len(books) > 0 {
			m.bookIndex = (m.bookIndex - 1 + len(books)) % len(books)
			m.lessonIndex = 0
		}
	case "up", "k":
		if m.lessonIndex > 0 {
			m.lessonIndex--
		}
	case "down", "j":
		if m.lessonIndex < len(shelf)-1 {
			m.lessonIndex++
		}
	case "enter", " ":
		if m.lessonIndex < len(shelf) {
			return m.dispatch(game.ChooseLesson{Key: shelf[m.lessonIndex].Key})
		}
	}
	return nil
}

func (m *Model) updateSetup(msg tea.KeyMsg, presets []int, start game.Action) tea.Cmd {
	key := msg.String()
	switch key {
	case "enter":
		return m.dispatch(start)
	case "esc":
		return m.dispatch(game.Back{})
	case "c":
		return m.openNumber(inputCount)
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(presets) {
		return m.dispatch(game.SetCount{Count: presets[n-1]})
	}
	return nil
}

func (m *Model) updateSpelling(s *spelling.Session, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return m.dispatch(game.RequestQuit{})
	case tea.KeyBackspace, tea.KeyDelete:
		return m.dispatch(game.Backspace{})
	case tea.KeyEnter:
		if s.ExampleOpen() {
			return m.dispatch(game.CloseExample{})
		}
		return m.dispatch(game.NextQuestion{})
	case tea.KeyTab:
		if s.ExampleOpen() {
			return m.dispatch(game.CloseExample{})
		}
		return m.dispatch(game.ShowExample{})
	case tea.KeyRunes:
		cmds := make([]tea.Cmd, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == '?' {
				cmds = append(cmds, m.dispatch(game.BuyHint{}))
				continue
			}
			cmds = append(cmds, m.dispatch(game.TypeLetter{Letter: r}))
		}
		return tea.Batch(cmds...)
	}
	return nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.menuIndex = 0
	case "down", "j":
		m.menuIndex = 1
	case "1", "s":
		return m.dispatch(game.ChooseSingle{})
	case "2", "d":
		return m.dispatch(game.ChooseDual{})
	case "enter", " ":
		if m.menuIndex == 1 {
			return m.dispatch(game.ChooseDual{})
		}
		return m.dispatch(game.ChooseSingle{})
	case "esc":
		return m.dispatch(game.Back{})
	}
	return nil
}

func (m *Model) updateDuel(s *game.MatchingDualPlayingScreen, msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" {
		return m.dispatch(game.RequestQuit{})
	}
	p1, p2 := s.Duel.Round(match.P1), s.Duel.Round(match.P2)
	// A finished side stops reacting; the other side plays on.
	switch key {
	case "f":
		return m.dispatch(game.FinishDuel{})
	case " ":
		if p1.Complete() {
			return nil
		}
		return m.dispatch(game.SelectCard{Player: match.P1, Index: m.cursors[0]})
	case "enter":
		if p2.Complete() {
			return nil
		}
		return m.dispatch(game.SelectCard{Player: match.P2, Index: m.cursors[1]})
	}
	if !p1.Complete() {
		m.moveBoardCursor(0, len(p1.Cards()), key, "a", "d", "w", "s")
	}
	if !p2.Complete() {
		m.moveBoardCursor(1, len(p2.Cards()), key, "left", "right", "up", "down")
	}
	return nil
}

func (m *Model) moveBoardCursor(player, total int, key, left, right, up, down string) {
	switch key {
	case left:
		m.cursors[player] = moveCursor(m.cursors[player], total, -1, 0)
	case right:
		m.cursors[player] = moveCursor(m.cursors[player], total, 1, 0)
	case up:
		m.cursors[player] = moveCursor(m.cursors[player], total, 0, -1)
	case down:
		m.cursors[player] = moveCursor(m.cursors[player], total, 0, 1)
	}
}
