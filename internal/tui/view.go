package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vocabquest/internal/game"
	"github.com/verte-zerg/vocabquest/internal/match"
	"github.com/verte-zerg/vocabquest/internal/spelling"
	"github.com/verte-zerg/vocabquest/internal/vocab"
)

const defaultWidth = 80

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	solvedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	blankStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)

	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)

	cardBoxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardCursorStyle  = cardBoxStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	englishCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#69B1FF"))
	chineseCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9C6E"))
	pendingCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1F1F1F")).Background(lipgloss.Color("#C89A3A"))
	matchedCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
)

var helpLines = map[game.Kind]string{
	game.Home:                      "←/→ mode · enter start · p lessons · q quit",
	game.SpellingSetup:             "1-3 presets · c custom · enter start · esc back",
	game.SpellingPlaying:           "type the word · ? hint · tab example · enter next · esc quit",
	game.SpellingReview:            "enter home",
	game.MatchingMenu:              "1 single · 2 duel · esc back",
	game.MatchingSingleSetup:       "1-2 presets · c custom · enter continue · esc back",
	game.MatchingSinglePlayerEntry: "enter start · esc back",
	game.MatchingSinglePlaying:     "arrows move · enter/space select · esc quit",
	game.MatchingSingleResult:      "enter next student · esc menu",
	game.MatchingDualSetup:         "1-2 presets · c custom · m dice max · r/R roll · enter start · esc back",
	game.MatchingDualPlaying:       "P1 w a s d + space · P2 arrows + enter · esc quit",
	game.MatchingDualResult:        "enter menu",
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch {
	case m.locked:
		body = m.viewGate()
	case m.engine.Quitting():
		body = modalStyle.Render("Quit this round?\n\n" + mutedStyle.Render("y confirm · n cancel"))
	default:
		parts := []string{m.viewHeader(), "", m.viewScreen()}
		if notice := m.notice(); notice != "" {
			parts = append(parts, "", noticeStyle.Render(notice))
		}
		parts = append(parts, "", mutedStyle.Render(m.help()))
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) notice() string {
	if m.inputErr != "" {
		return m.inputErr
	}
	return m.engine.Notice()
}

func (m *Model) help() string {
	kind := m.engine.State().Kind()
	if kind == game.Home {
		if s, ok := m.engine.State().(*game.HomeScreen); ok && s.PickerOpen {
			return "tab book · ↑/↓ lesson · enter choose · esc close"
		}
	}
	if kind == game.MatchingDualPlaying {
		if s, ok := m.engine.State().(*game.MatchingDualPlayingScreen); ok && s.Winner() != match.NoPlayer {
			return "P1 w a s d + space · P2 arrows + enter · f results · esc quit"
		}
	}
	return helpLines[kind]
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width - 2
}

func (m *Model) viewGate() string {
	lines := []string{titleStyle.Render("VocabQuest"), "", m.password.View()}
	if m.gateNotice != "" {
		lines = append(lines, "", noticeStyle.Render(m.gateNotice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewHeader() string {
	header := titleStyle.Render("VocabQuest")
	if lesson, ok := m.engine.Lesson(); ok {
		header += mutedStyle.Render(fmt.Sprintf("  %s %s%s %s", lesson.Key, lesson.Icon1, lesson.Icon2, lesson.Title))
	}
	return header
}

func (m *Model) viewScreen() string {
	switch s := m.engine.State().(type) {
	case *game.HomeScreen:
		return m.viewHome(s)
	case *game.SpellingSetupScreen:
		return m.viewSetup("Spelling", "Questions", s.Count, game.SpellingPresets)
	case *game.SpellingPlayingScreen:
		return m.viewSpelling(s.Session)
	case *game.SpellingReviewScreen:
		return m.viewReview(s)
	case *game.MatchingMenuScreen:
		return m.viewMenu()
	case *game.MatchingSingleSetupScreen:
		return m.viewSetup("Single player", "Pairs", s.Count, game.SinglePresets)
	case *game.MatchingSinglePlayerEntryScreen:
		return m.viewPlayerEntry(s)
	case *game.MatchingSinglePlayingScreen:
		return m.viewSingle(s)
	case *game.MatchingSingleResultScreen:
		return m.viewSingleResult(s)
	case *game.MatchingDualSetupScreen:
		return m.viewDualSetup(s)
	case *game.MatchingDualPlayingScreen:
		return m.viewDuel(s)
	case *game.MatchingDualResultScreen:
		return m.viewDualResult(s)
	}
	return ""
}

func (m *Model) viewHome(s *game.HomeScreen) string {
	modes := []game.Mode{game.ModeSpelling, game.ModeMatching}
	tabs := make([]string, 0, len(modes))
	for _, mode := range modes {
		style := inactiveNavStyle
		if mode == s.Mode {
			style = activeNavStyle
		}
		tabs = append(tabs, style.Render(mode.String()))
	}
	carousel := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if !s.PickerOpen {
		lesson := mutedStyle.Render("No lesson selected")
		if l, ok := m.engine.Lesson(); ok {
			lesson = fmt.Sprintf("Lesson %s · %d words", l.Key, len(l.Vocab))
		}
		return lipgloss.JoinVertical(lipgloss.Left, carousel, "", lesson)
	}
	return lipgloss.JoinVertical(lipgloss.Left, carousel, "", m.viewPicker())
}

func (m *Model) viewPicker() string {
	books, shelf := m.bookLessons()
	if len(books) == 0 {
		return mutedStyle.Render("No lessons available")
	}
	tabs := make([]string, 0, len(books))
	for i, b := range books {
		style := inactiveNavStyle
		if i == m.bookIndex {
			style = activeNavStyle
		}
		tabs = append(tabs, style.Render(b))
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, tabs...)}
	current, _ := m.engine.Lesson()
	for i, l := range shelf {
		marker := "  "
		if i == m.lessonIndex {
			marker = "› "
		}
		line := fmt.Sprintf("%s%s %s%s %s", marker, l.Key, l.Icon1, l.Icon2, l.Title)
		switch {
		case i == m.lessonIndex:
			line = titleStyle.Render(line)
		case l.Key == current.Key:
			line = hintStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewPresets(count int, presets []int) string {
	items := make([]string, 0, len(presets))
	for i, p := range presets {
		item := fmt.Sprintf("[%d] %d", i+1, p)
		if p == count {
			item = titleStyle.Render(item)
		}
		items = append(items, item)
	}
	line := strings.Join(items, "  ")
	if m.editing == inputCount {
		line += "\n" + m.number.View()
	}
	return line
}

func (m *Model) viewSetup(title, unit string, count int, presets []int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		fmt.Sprintf("%s: %d", unit, count),
		m.viewPresets(count, presets),
	)
}

func (m *Model) viewSpelling(s *spelling.Session) string {
	q, ok := s.Current()
	if !ok {
		return ""
	}
	n, total := s.Progress()
	width := m.contentWidth()
	pos, clean := vocab.ParseDefinition(q.Definition)

	lines := []string{
		mutedStyle.Render(fmt.Sprintf("Question %d/%d · Mistakes %d", n, total, s.Mistakes())),
		"",
		strings.TrimSpace(strings.Join(q.Images, " ") + "  " + clean),
	}
	if pos != "" {
		lines = append(lines, mutedStyle.Render(pos))
	}
	lines = append(lines, "", wrapStyledRunes(buildSlotRunes(s.Slots(), s.Status(), slotCursor(s)), width))
	if s.DefinitionRevealed() && q.EnglishDef != "" {
		lines = append(lines, "", hintStyle.Render(wrapText(q.EnglishDef, width)))
	}
	switch s.Status() {
	case spelling.Wrong:
		lines = append(lines, "", incorrectStyle.Render("Try again"))
	case spelling.Correct:
		lines = append(lines, "", solvedStyle.Render("Correct! "+q.Word))
		if s.ExampleOpen() && q.Example != nil {
			example := wrapText(q.Example.Sentence, width-4) + "\n" + mutedStyle.Render(wrapText(q.Example.Translation, width-4))
			lines = append(lines, "", modalStyle.Render(example))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewReview(s *game.SpellingReviewScreen) string {
	summary := fmt.Sprintf("%d questions · %d mistakes", s.Total, s.Mistakes)
	if len(s.Wrong) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Review"), summary, "", solvedStyle.Render("Perfect! No mistakes."))
	}
	t := reviewTable(s.Wrong)
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Review"), summary, "", t.View())
}

func (m *Model) viewMenu() string {
	options := []string{"Single player", "Two-player duel"}
	lines := []string{titleStyle.Render("Matching")}
	for i, o := range options {
		marker := "  "
		line := fmt.Sprintf("%d %s", i+1, o)
		if i == m.menuIndex {
			marker = "› "
			line = titleStyle.Render(line)
		}
		lines = append(lines, marker+line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewLeaderboard(rank int) string {
	entries := m.engine.Leaderboard()
	if len(entries) == 0 {
		return mutedStyle.Render("No records yet.")
	}
	t := leaderboardTable(entries, rank)
	return t.View()
}

func (m *Model) viewPlayerEntry(s *game.MatchingSinglePlayerEntryScreen) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Single player · %d pairs", s.Count)),
		"",
		m.challenger.View(),
		"",
		m.viewLeaderboard(0),
	)
}

func (m *Model) viewSingle(s *game.MatchingSinglePlayingScreen) string {
	status := fmt.Sprintf("Student %s · %s · %d/%d pairs",
		s.Challenger, match.FormatTime(s.Elapsed), s.Round.MatchedPairs(), s.Round.Pairs())
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(status),
		"",
		renderBoard(s.Round, m.cursors[0], m.contentWidth()),
	)
}

func (m *Model) viewSingleResult(s *game.MatchingSingleResultScreen) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		solvedStyle.Render(fmt.Sprintf("%s finished in %s · rank %d", s.Challenger, match.FormatTime(s.TimeTaken), s.Rank)),
		"",
		m.viewLeaderboard(s.Rank),
	)
}

func (m *Model) viewDualSetup(s *game.MatchingDualSetupScreen) string {
	dice := mutedStyle.Render("r roll one die · R roll two")
	switch {
	case s.Rolling:
		dice = hintStyle.Render("Rolling…")
	case len(s.Dice) > 0:
		values := make([]string, len(s.Dice))
		for i, d := range s.Dice {
			values[i] = fmt.Sprintf("%d", d)
		}
		dice = titleStyle.Render("Dice: " + strings.Join(values, " · "))
	}
	lines := []string{
		titleStyle.Render("Two-player duel"),
		"",
		fmt.Sprintf("Pairs: %d", s.Count),
		m.viewPresets(s.Count, game.DualPresets),
		"",
		fmt.Sprintf("Dice max: %d", s.DiceMax),
	}
	if m.editing == inputDiceMax {
		lines = append(lines, m.number.View())
	}
	lines = append(lines, dice)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewDuel(s *game.MatchingDualPlayingScreen) string {
	half := (m.contentWidth() - 2) / 2
	panel := func(p match.Player, elapsed time.Duration, cursor int) string {
		r := s.Duel.Round(p)
		title := fmt.Sprintf("%s · %s · %d/%d", p, match.FormatTime(elapsed), r.MatchedPairs(), r.Pairs())
		style := mutedStyle
		if s.Winner() == p {
			title += " · WINNER"
			style = solvedStyle
		}
		if r.Complete() {
			cursor = -1
		}
		return lipgloss.JoinVertical(lipgloss.Left, style.Render(title), "", renderBoard(r, cursor, half))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		panel(match.P1, s.P1Elapsed, m.cursors[0]),
		"  ",
		panel(match.P2, s.P2Elapsed, m.cursors[1]),
	)
}

func (m *Model) viewDualResult(s *game.MatchingDualResultScreen) string {
	result := func(p match.Player, taken time.Duration, done bool) string {
		if !done {
			return fmt.Sprintf("%s  did not finish", p)
		}
		return fmt.Sprintf("%s  %s", p, match.FormatTime(taken))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		solvedStyle.Render(fmt.Sprintf("%s wins!", s.Winner)),
		"",
		result(match.P1, s.P1Time, s.P1Done),
		result(match.P2, s.P2Time, s.P2Done),
	)
}
