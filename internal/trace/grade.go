// internal/trace/grade.go
package trace

import (
	"math"
	"strconv"
)

// Verdict classifies an answer or a relative grade.
type Verdict string

const (
	Correct     Verdict = "correct"
	Semicorrect Verdict = "semicorrect"
	Incorrect   Verdict = "incorrect"
)

// GradeVerdict buckets a relative grade in [0, 1].
func GradeVerdict(relative float64) Verdict {
	switch {
	case math.IsNaN(relative) || relative < 0.00001:
		return Incorrect
	case relative < 0.75:
		return Semicorrect
	default:
		return Correct
	}
}

// AnswerVerdict is the verdict for the parsed answer of an output.
func (o Output) AnswerVerdict() Verdict {
	if o.Correct {
		return Correct
	}
	return Incorrect
}

// Graded reports whether the output carries a judge grade.
func (o Output) Graded() bool {
	return o.Grade != nil && len(o.Judgment) > 0
}

// Points returns the absolute grade rounded to two decimals.
func (o Output) Points() float64 {
	if o.Grade == nil {
		return 0
	}
	return math.Round(*o.Grade*o.MaxGrade*100) / 100
}

// GradeText renders the grade as "points/max".
func (o Output) GradeText() string {
	return formatNumber(o.Points()) + "/" + formatNumber(o.MaxGrade)
}

// GradeVerdict classifies the relative grade of the output.
func (o Output) GradeVerdict() Verdict {
	if o.Grade == nil {
		return Incorrect
	}
	return GradeVerdict(*o.Grade)
}

// JudgeScore is one judge's score on a criterion.
type JudgeScore struct {
	Judge     int
	Points    float64
	MaxPoints float64
	Comment   string
	Verdict   Verdict
}

// Title renders the judge heading, e.g. "Human Judge 2 (1.5/2)".
func (j JudgeScore) Title() string {
	return "Human Judge " + strconv.Itoa(j.Judge) + " (" + formatNumber(j.Points) + "/" + formatNumber(j.MaxPoints) + ")"
}

// CriterionSummary aggregates every judge's score on one criterion.
type CriterionSummary struct {
	Title       string
	Average     float64
	MaxPoints   float64
	Description string
	Judges      []JudgeScore
}

// Label renders the tab label, e.g. "Setup (1.66/2)".
func (c CriterionSummary) Label() string {
	return c.Title + " (" + formatNumber(c.Average) + "/" + formatNumber(c.MaxPoints) + ")"
}

// Criteria summarizes the grading details of an output. The first judge's
// scheme defines the criteria; judges missing a criterion are skipped.
func (o Output) Criteria() []CriterionSummary {
	if len(o.Judgment) == 0 {
		return nil
	}
	scheme := o.Judgment[0].Details
	out := make([]CriterionSummary, 0, len(scheme))
	for j, c := range scheme {
		summary := CriterionSummary{
			Title:       c.Title,
			MaxPoints:   c.MaxPoints,
			Description: c.GradingSchemeDesc,
		}
		var total float64
		for i, judge := range o.Judgment {
			if j >= len(judge.Details) {
				continue
			}
			d := judge.Details[j]
			total += d.Points
			summary.Judges = append(summary.Judges, JudgeScore{
				Judge:     i + 1,
				Points:    floor2(d.Points),
				MaxPoints: d.MaxPoints,
				Comment:   d.Desc,
				Verdict:   relativeVerdict(d.Points, d.MaxPoints),
			})
		}
		summary.Average = floor2(total / float64(len(o.Judgment)))
		out = append(out, summary)
	}
	return out
}

func relativeVerdict(points, max float64) Verdict {
	if max <= 0 {
		return Incorrect
	}
	return GradeVerdict(points / max)
}

// floor2 truncates to two decimals, tolerating binary representation error.
func floor2(v float64) float64 {
	return math.Floor(v*100+1e-9) / 100
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CriteriaCount returns how many grading criteria the given run has.
func (r Record) CriteriaCount(run int) int {
	if run < 0 || run >= len(r.Outputs) || len(r.Outputs[run].Judgment) == 0 {
		return 0
	}
	return len(r.Outputs[run].Judgment[0].Details)
}
