package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/vocabquest/internal/match"
	"github.com/verte-zerg/vocabquest/internal/model"
)

const (
	boardColumns = 4
	cardLines    = 2
	minCellWidth = 6
	// border and padding around each card
	cardChrome = 4
)

// moveCursor moves a board cursor by dx columns and dy rows. Moves that
// leave the grid keep the cursor in place.
func moveCursor(cur, total, dx, dy int) int {
	if total <= 0 {
		return 0
	}
	col := cur%boardColumns + dx
	if col < 0 || col >= boardColumns {
		return cur
	}
	next := cur + dx + dy*boardColumns
	if next < 0 || next >= total {
		return cur
	}
	return next
}

// centerCell pads s to width display cells, truncating with "~" when too wide.
func centerCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "~")
	left := (width - runewidth.StringWidth(s)) / 2
	return runewidth.FillRight(strings.Repeat(" ", left)+s, width)
}

// cardText splits card content into exactly cardLines centered lines.
func cardText(content string, width int) []string {
	parts := strings.Split(content, "\n")
	if len(parts) > cardLines {
		parts = append(parts[:cardLines-1], strings.Join(parts[cardLines-1:], " "))
	}
	lines := make([]string, cardLines)
	offset := (cardLines - len(parts)) / 2
	for i := range lines {
		text := ""
		if j := i - offset; j >= 0 && j < len(parts) {
			text = parts[j]
		}
		lines[i] = centerCell(text, width)
	}
	return lines
}

func renderCard(card model.MatchingCard, pending, cursor bool, width int) string {
	text := cardStyleFor(card, pending).Render(strings.Join(cardText(card.Content, width), "\n"))
	box := cardBoxStyle
	if cursor {
		box = cardCursorStyle
	}
	return box.Render(text)
}

func cardStyleFor(card model.MatchingCard, pending bool) lipgloss.Style {
	switch {
	case card.Matched:
		return matchedCardStyle
	case pending:
		return pendingCardStyle
	case card.Side == model.SideChinese:
		return chineseCardStyle
	default:
		return englishCardStyle
	}
}

// boardCellWidth returns the text width of one card for a board width.
func boardCellWidth(width int) int {
	w := (width-(boardColumns-1))/boardColumns - cardChrome
	if w < minCellWidth {
		return minCellWidth
	}
	return w
}

// renderBoard draws a round as a grid. cursor < 0 hides the cursor.
func renderBoard(r *match.Round, cursor, width int) string {
	cards := r.Cards()
	if len(cards) == 0 {
		return ""
	}
	cellWidth := boardCellWidth(width)
	rows := make([]string, 0, (len(cards)+boardColumns-1)/boardColumns)
	for start := 0; start < len(cards); start += boardColumns {
		end := start + boardColumns
		if end > len(cards) {
			end = len(cards)
		}
		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, " ")
			}
			cells = append(cells, renderCard(cards[i], r.IsPending(i), i == cursor, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
