// internal/render/render.go
// Package render draws assembled leaderboard tables for the terminal.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/mwiater/arenaboard/internal/util"
)

const (
	maxModelWidth = 32
	flagMarker    = "⚠️"
)

// Cursor addresses a data cell by row and column index into Table.Columns.
type Cursor struct {
	Row int
	Col int
}

// Options controls table rendering.
type Options struct {
	Width    int
	Selected *Cursor
	NoColor  bool
	Note     string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	numberStyle   = cellStyle.Align(lipgloss.Right)
	noteStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff7d00"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// CompetitionTable renders the primary table of a competition. Per-task
// views lead with rank, model, accuracy and cost; the aggregate view leads
// with rank and model only.
func CompetitionTable(t leaderboard.Table, opts Options) string {
	lead := []string{"#", "Model"}
	if !t.Aggregate {
		lead = append(lead, leaderboard.FieldAcc, leaderboard.FieldCost)
	}

	headers := append([]string(nil), lead...)
	for _, c := range t.Columns {
		headers = append(headers, columnHeader(c))
	}

	rows := make([][]string, 0, len(t.Rows))
	for i, r := range t.Rows {
		model := util.Truncate(r.Model, maxModelWidth)
		if r.Flagged {
			model += " " + flagMarker
		}
		row := []string{strconv.Itoa(i + 1), model}
		if !t.Aggregate {
			row = append(row, leaderboard.FormatPercent(r.Primary), leaderboard.FormatDollars(r.Cost))
		}
		for _, c := range r.Cells {
			row = append(row, cellText(t, c, opts.NoColor))
		}
		rows = append(rows, row)
	}

	tbl := newTable(headers, rows, opts).StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col < len(lead) {
			if col == 1 {
				return cellStyle
			}
			return numberStyle
		}
		dataCol := col - len(lead)
		style := numberStyle
		if !t.Aggregate && !opts.NoColor && row < len(t.Rows) && dataCol < len(t.Rows[row].Cells) {
			tier := t.Rows[row].Cells[dataCol].Tier
			style = style.Background(lipgloss.Color(tier.Color())).Foreground(lipgloss.Color("#000000"))
		}
		if opts.Selected != nil && opts.Selected.Row == row && opts.Selected.Col == dataCol {
			style = style.Inherit(selectedStyle).Bold(true)
		}
		return style
	})

	return frame(t, fit(tbl, opts.Width), opts)
}

// SecondaryTable renders the token and cost table of a competition.
func SecondaryTable(t leaderboard.Table, opts Options) string {
	headers := []string{"Model"}
	for _, c := range t.Columns {
		headers = append(headers, c.Title)
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := []string{util.Truncate(r.Model, maxModelWidth)}
		for _, c := range r.Cells {
			row = append(row, c.Display)
		}
		rows = append(rows, row)
	}

	tbl := newTable(headers, rows, opts).StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 0:
			return cellStyle
		default:
			return numberStyle
		}
	})

	opts.Note = ""
	return frame(t, fit(tbl, opts.Width), opts)
}

func newTable(headers []string, rows [][]string, opts Options) *table.Table {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...)
	if !opts.NoColor {
		tbl = tbl.BorderStyle(borderStyle)
	}
	return tbl
}

// fit constrains the table to width when its natural size exceeds it.
func fit(tbl *table.Table, width int) string {
	out := tbl.Render()
	if width > 0 && lipgloss.Width(out) > width {
		out = tbl.Width(width).Render()
	}
	return out
}

func frame(t leaderboard.Table, body string, opts Options) string {
	var b strings.Builder
	title := t.Title
	if t.Secondary {
		title += " · tokens and cost"
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	if opts.Note != "" {
		b.WriteString(noteStyle.Render(util.WrapToWidth(opts.Note, noteWidth(opts.Width))) + "\n")
	}
	b.WriteString(body)
	if t.Warning != "" && !t.Secondary {
		b.WriteString("\n" + warningStyle.Render(t.Warning))
	}
	return b.String()
}

func noteWidth(width int) int {
	if width <= 0 {
		return 100
	}
	return width
}

// columnHeader renders a column title followed by its difficulty rating,
// e.g. "1 (20 easy)". Header rows are a single line tall.
func columnHeader(c leaderboard.Column) string {
	if !c.Difficulty.Valid {
		return c.Title
	}
	return c.Title + " (" + strconv.Itoa(c.Difficulty.Value) + " " + c.DifficultyClass + ")"
}

// cellText returns the visible text of a primary-table cell. Without color,
// unjudged per-task cells fall back to their rounded score.
func cellText(t leaderboard.Table, c leaderboard.Cell, noColor bool) string {
	if !t.Aggregate {
		if c.Display == "" && noColor {
			return leaderboard.FormatWholePercent(c.Value)
		}
		return c.Display
	}

	var parts []string
	if sym := c.Medal.Symbol(); sym != "" {
		parts = append(parts, sym)
	}
	if c.Flagged {
		parts = append(parts, flagMarker)
	}
	parts = append(parts, c.Display)
	return strings.Join(parts, " ")
}
