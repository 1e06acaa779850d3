package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/vocabquest/internal/spelling"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildSlotRunes renders the answer slots of a spelling question, one glyph
// per letter separated by spaces. cursorIndex < 0 hides the cursor.
func buildSlotRunes(slots []spelling.Slot, status spelling.Status, cursorIndex int) []styledRune {
	out := make([]styledRune, 0, len(slots)*2)
	for i, slot := range slots {
		if i > 0 {
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
		}
		style := blankStyle
		switch slot.Kind {
		case spelling.SlotTyped:
			switch status {
			case spelling.Wrong:
				style = incorrectStyle
			case spelling.Correct:
				style = solvedStyle
			default:
				style = correctStyle
			}
		case spelling.SlotHint:
			style = hintStyle
		}
		if i == cursorIndex {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:     style.Render(string(slot.Letter)),
			width: runewidth.RuneWidth(slot.Letter),
		})
	}
	return out
}

// slotCursor returns the position the next letter goes to, or -1.
func slotCursor(s *spelling.Session) int {
	if s.Status() != spelling.Typing {
		return -1
	}
	n := len([]rune(s.Input()))
	if n >= len(s.Slots()) {
		return -1
	}
	return n
}

func buildTextRunes(text string) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, styledRune{
			s:       string(r),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

// wrapText breaks plain text at spaces so no line is wider than width.
func wrapText(text string, width int) string {
	return wrapStyledRunes(buildTextRunes(text), width)
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
