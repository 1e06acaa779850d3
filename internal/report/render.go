package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/vocabquest/internal/match"
	"github.com/verte-zerg/vocabquest/internal/model"
	"github.com/verte-zerg/vocabquest/internal/vocab"
)

const (
	terminalWidthBackup = 80
	cardColumns         = 4
	minCardWidth        = 10
)

// TerminalWidth returns the stdout width, or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLessons prints the catalogue grouped by book.
func RenderLessons(w io.Writer, lessons []model.Lesson, totalWidth int) error {
	if len(lessons) == 0 {
		_, err := fmt.Fprintln(w, "No lessons found.")
		return err
	}
	headers := []string{"Book", "Lesson", "Title", "Words", "Spellable"}
	rows := make([][]string, 0, len(lessons))
	for _, book := range vocab.Books(lessons) {
		for _, l := range lessons {
			if l.Book() != book {
				continue
			}
			title := strings.TrimSpace(l.Icon1 + l.Icon2 + " " + l.Title)
			rows = append(rows, []string{
				book,
				l.Key,
				title,
				fmt.Sprintf("%d", len(l.Vocab)),
				fmt.Sprintf("%d", len(vocab.Filter(l.Vocab, vocab.Spellable))),
			})
		}
	}
	lines := formatTable(headers, rows, map[int]bool{3: true, 4: true})
	if totalWidth > 0 {
		for i, line := range lines {
			lines[i] = Truncate(line, totalWidth)
		}
	}
	return writeLines(w, lines)
}

// RenderCards prints a dealt card set as a grid, numbering each pair.
func RenderCards(w io.Writer, cards []model.MatchingCard, totalWidth int) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "No cards dealt.")
		return err
	}
	if totalWidth <= 0 {
		totalWidth = terminalWidthBackup
	}
	cellWidth := (totalWidth - 2*(cardColumns-1)) / cardColumns
	if cellWidth < minCardWidth {
		cellWidth = minCardWidth
	}

	pairs := map[string]int{}
	cells := make([]string, len(cards))
	for i, c := range cards {
		n, ok := pairs[c.Key]
		if !ok {
			n = len(pairs) + 1
			pairs[c.Key] = n
		}
		content := strings.ReplaceAll(c.Content, "\n", " ")
		cells[i] = Truncate(fmt.Sprintf("%2d %s %s", n, c.Side, content), cellWidth)
	}

	widths := make([]int, cardColumns)
	for i := range widths {
		widths[i] = cellWidth
	}
	lines := make([]string, 0, len(cells)/cardColumns+2)
	for start := 0; start < len(cells); start += cardColumns {
		end := start + cardColumns
		if end > len(cells) {
			end = len(cells)
		}
		lines = append(lines, formatRow(cells[start:end], widths[:end-start], nil))
	}
	lines = append(lines, "", fmt.Sprintf("%d pairs, %d cards", len(pairs), len(cards)))
	return writeLines(w, lines)
}

// RenderLeaderboard prints ranked challenge results.
func RenderLeaderboard(w io.Writer, entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No records yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Leaderboard"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), e.Identifier, match.FormatTime(e.TimeTaken)})
	}
	lines := formatTable([]string{"Rank", "Student", "Time"}, rows, map[int]bool{0: true, 2: true})
	if err := writeLines(w, lines); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderReview prints the words spelled wrong, most mistakes first.
func RenderReview(w io.Writer, wrong []model.WrongAnswer) error {
	if len(wrong) == 0 {
		_, err := fmt.Fprintln(w, "Perfect! No mistakes.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Review"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(wrong))
	for _, a := range wrong {
		rows = append(rows, []string{a.Word, a.Definition, fmt.Sprintf("%d", a.Mistakes)})
	}
	lines := formatTable([]string{"Word", "Definition", "Mistakes"}, rows, map[int]bool{2: true})
	if err := writeLines(w, lines); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
