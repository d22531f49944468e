// internal/trace/render.go
package trace

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/arenaboard/internal/leaderboard"
)

// ErrorText is shown in place of a trace that could not be loaded.
const ErrorText = "Error loading traces. Try again."

// Options selects what part of a record is shown.
type Options struct {
	Run       int
	Criterion int
	Width     int
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	tabStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("244"))
	activeTab    = lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var verdictColors = map[Verdict]lipgloss.Color{
	Correct:     lipgloss.Color("#00ff00"),
	Semicorrect: lipgloss.Color("#ffff00"),
	Incorrect:   lipgloss.Color("#ff0000"),
}

// Heading returns "Solution: Model M for Problem P" for a 1-based task.
func Heading(info leaderboard.CompetitionInfo, model string, task int) string {
	return fmt.Sprintf("Solution: Model %s for Problem %s", model, leaderboard.ProblemName(info, task))
}

// RenderError renders the inline failure panel for a trace.
func RenderError(heading string) string {
	return headingStyle.Render(heading) + "\n\n" + errorStyle.Render(ErrorText)
}

// RenderLoading renders the placeholder shown while a trace is in flight.
func RenderLoading(heading, spinner string) string {
	return headingStyle.Render(heading) + "\n\n" + spinner + " Loading..."
}

// Render renders a record for the terminal.
func Render(heading string, rec Record, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder

	b.WriteString(headingStyle.Render(heading) + "\n")
	section(&b, "Problem", rec.Statement, boxStyle, width)
	if rec.ContaminationInfo != "" {
		section(&b, "Similar problems", rec.ContaminationInfo, boxStyle.BorderForeground(lipgloss.Color("244")), width)
	}
	if rec.GoldAnswer.Present() {
		section(&b, "Correct Answer", rec.GoldAnswer.Text, boxStyle, width)
	}

	if len(rec.Outputs) == 0 {
		b.WriteString("\n" + mutedStyle.Render("No runs recorded for this task."))
		return b.String()
	}

	run := clamp(opts.Run, len(rec.Outputs))
	labels := make([]string, len(rec.Outputs))
	for i := range rec.Outputs {
		labels[i] = fmt.Sprintf("Run %d", i+1)
	}
	b.WriteString("\n" + tabs(labels, run) + "\n")

	out := rec.Outputs[run]
	if out.ParsedAnswer.Valid {
		section(&b, "Parsed Answer", out.ParsedAnswer.Text, verdictBox(out.AnswerVerdict()), width)
	}
	if out.Graded() {
		renderGrade(&b, out, opts.Criterion, width)
	}
	section(&b, "Full Model Solution", out.Solution, boxStyle, width)
	return b.String()
}

func renderGrade(b *strings.Builder, out Output, criterion, width int) {
	section(b, "Grade", out.GradeText(), verdictBox(out.GradeVerdict()), width)

	criteria := out.Criteria()
	if len(criteria) == 0 {
		return
	}
	b.WriteString("\n" + labelStyle.Render("Grading Details") + "\n")
	labels := make([]string, len(criteria))
	for i, c := range criteria {
		labels[i] = c.Label()
	}
	selected := clamp(criterion, len(criteria))
	b.WriteString(tabs(labels, selected) + "\n")

	c := criteria[selected]
	section(b, "Description", c.Description, boxStyle, width)
	for _, j := range c.Judges {
		section(b, j.Title(), j.Comment, verdictBox(j.Verdict), width)
	}
}

func section(b *strings.Builder, title, body string, style lipgloss.Style, width int) {
	b.WriteString("\n" + labelStyle.Render(title) + "\n")
	b.WriteString(style.Width(width-2).Render(body) + "\n")
}

func tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = activeTab.Render(l)
		} else {
			parts[i] = tabStyle.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func verdictBox(v Verdict) lipgloss.Style {
	return boxStyle.BorderForeground(verdictColors[v])
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
