package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/vocabquest/internal/match"
	"github.com/verte-zerg/vocabquest/internal/model"
)

const maxTableRows = 10

func tableStyles(highlight bool) table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell
	if highlight {
		styles.Selected = styles.Cell.
			Foreground(lipgloss.Color("#C89A3A")).
			Bold(true)
	}
	return styles
}

// fitColumns widens each column to its widest cell.
func fitColumns(columns []table.Column, rows []table.Row) []table.Column {
	for i := range columns {
		w := runewidth.StringWidth(columns[i].Title)
		for _, row := range rows {
			if i < len(row) {
				if cw := runewidth.StringWidth(row[i]); cw > w {
					w = cw
				}
			}
		}
		// one column of right padding
		columns[i].Width = w + 1
	}
	return columns
}

func newTable(columns []table.Column, rows []table.Row, highlight int) table.Model {
	visible := len(rows)
	if visible > maxTableRows {
		visible = maxTableRows
	}
	if visible < 1 {
		visible = 1
	}
	t := table.New(
		table.WithColumns(fitColumns(columns, rows)),
		table.WithRows(rows),
		table.WithStyles(tableStyles(highlight >= 0)),
		table.WithHeight(visible+2),
	)
	if highlight >= 0 && highlight < len(rows) {
		t.SetCursor(highlight)
	}
	return t
}

// leaderboardTable lists results fastest first. rank is 1-based; 0 highlights nothing.
func leaderboardTable(entries []model.LeaderboardEntry, rank int) table.Model {
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{fmt.Sprintf("%d", i+1), e.Identifier, match.FormatTime(e.TimeTaken)})
	}
	columns := []table.Column{{Title: "Rank"}, {Title: "Student"}, {Title: "Time"}}
	return newTable(columns, rows, rank-1)
}

func reviewTable(wrong []model.WrongAnswer) table.Model {
	rows := make([]table.Row, 0, len(wrong))
	for _, a := range wrong {
		rows = append(rows, table.Row{a.Word, a.Definition, fmt.Sprintf("%d", a.Mistakes)})
	}
	columns := []table.Column{{Title: "Word"}, {Title: "Definition"}, {Title: "Mistakes"}}
	return newTable(columns, rows, -1)
}
