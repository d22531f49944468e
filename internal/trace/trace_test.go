package trace

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gradedRecord = `{
	"statement": "Find the period of the pendulum.",
	"gold_answer": "2\\pi\\sqrt{L/g}",
	"contamination_info": "Similar to IPhO 2019 problem 1.",
	"model_outputs": [
		{"parsed_answer": 42, "correct": false, "solution": "first attempt"},
		{
			"parsed_answer": "2\\pi\\sqrt{L/g}",
			"correct": true,
			"solution": "second attempt",
			"grade": 0.6667,
			"max_grade": 3,
			"judgment": [
				{"details": [
					{"title": "Setup", "points": 2, "max_points": 2, "desc": "good", "grading_scheme_desc": "Write the ODE"},
					{"title": "Result", "points": 0, "max_points": 1, "desc": "missing", "grading_scheme_desc": "Solve it"}
				]},
				{"details": [
					{"title": "Setup", "points": 1.33, "max_points": 2, "desc": "partial", "grading_scheme_desc": "Write the ODE"},
					{"title": "Result", "points": 1, "max_points": 1, "desc": "ok", "grading_scheme_desc": "Solve it"}
				]}
			]
		}
	]
}`

func decodeRecord(t *testing.T, raw string) Record {
	t.Helper()
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec
}

func TestRecordDecoding(t *testing.T) {
	rec := decodeRecord(t, gradedRecord)

	require.Len(t, rec.Outputs, 2)
	assert.Equal(t, Answer{Text: "42", Valid: true}, rec.Outputs[0].ParsedAnswer)
	assert.False(t, rec.Outputs[0].Graded())
	assert.True(t, rec.Outputs[1].Graded())
	assert.True(t, rec.GoldAnswer.Present())
	assert.Equal(t, 2, rec.CriteriaCount(1))
	assert.Equal(t, 0, rec.CriteriaCount(0))
	assert.Equal(t, 0, rec.CriteriaCount(7))

	var bare Record
	require.NoError(t, json.Unmarshal([]byte(`{"statement":"s","gold_answer":null,"model_outputs":[{"parsed_answer":null,"solution":"x"}]}`), &bare))
	assert.False(t, bare.GoldAnswer.Present())
	assert.False(t, bare.Outputs[0].ParsedAnswer.Valid)
}

func TestGradeVerdict(t *testing.T) {
	assert.Equal(t, Incorrect, GradeVerdict(0))
	assert.Equal(t, Incorrect, GradeVerdict(0.000009))
	assert.Equal(t, Semicorrect, GradeVerdict(0.00001))
	assert.Equal(t, Semicorrect, GradeVerdict(0.7499))
	assert.Equal(t, Correct, GradeVerdict(0.75))
	assert.Equal(t, Correct, GradeVerdict(1))
}

func TestOutputGrade(t *testing.T) {
	out := decodeRecord(t, gradedRecord).Outputs[1]

	assert.Equal(t, 2.0, out.Points())
	assert.Equal(t, "2/3", out.GradeText())
	assert.Equal(t, Semicorrect, out.GradeVerdict())
	assert.Equal(t, Correct, out.AnswerVerdict())
}

func TestCriteria(t *testing.T) {
	criteria := decodeRecord(t, gradedRecord).Outputs[1].Criteria()
	require.Len(t, criteria, 2)

	setup := criteria[0]
	assert.Equal(t, "Setup", setup.Title)
	assert.Equal(t, 1.66, setup.Average)
	assert.Equal(t, "Setup (1.66/2)", setup.Label())
	assert.Equal(t, "Write the ODE", setup.Description)
	require.Len(t, setup.Judges, 2)
	assert.Equal(t, "Human Judge 1 (2/2)", setup.Judges[0].Title())
	assert.Equal(t, Correct, setup.Judges[0].Verdict)
	assert.Equal(t, Semicorrect, setup.Judges[1].Verdict)

	result := criteria[1]
	assert.Equal(t, 0.5, result.Average)
	assert.Equal(t, Incorrect, result.Judges[0].Verdict)
	assert.Equal(t, Correct, result.Judges[1].Verdict)
}

func TestCriteriaToleratesShortJudgments(t *testing.T) {
	out := Output{Judgment: []Judgment{
		{Details: []Criterion{{Title: "A", Points: 1, MaxPoints: 1}, {Title: "B", Points: 1, MaxPoints: 0}}},
		{Details: []Criterion{{Title: "A", Points: 0, MaxPoints: 1}}},
	}}
	criteria := out.Criteria()
	require.Len(t, criteria, 2)
	assert.Len(t, criteria[1].Judges, 1)
	assert.Equal(t, Incorrect, criteria[1].Judges[0].Verdict)
}

func TestHeading(t *testing.T) {
	info := leaderboard.CompetitionInfo{ProblemNames: []leaderboard.Label{"1a", "1b"}}
	assert.Equal(t, "Solution: Model gpt-5 for Problem 1b", Heading(info, "gpt-5", 2))
	assert.Equal(t, "Solution: Model gpt-5 for Problem #3", Heading(info, "gpt-5", 3))
}

func TestRender(t *testing.T) {
	rec := decodeRecord(t, gradedRecord)

	first := Render("Solution: Model m for Problem 1", rec, Options{Width: 60})
	assert.Contains(t, first, "Solution: Model m for Problem 1")
	assert.Contains(t, first, "Find the period")
	assert.Contains(t, first, "Similar problems")
	assert.Contains(t, first, "Correct Answer")
	assert.Contains(t, first, "Run 1")
	assert.Contains(t, first, "Run 2")
	assert.Contains(t, first, "first attempt")
	assert.NotContains(t, first, "Grading Details")

	second := Render("h", rec, Options{Run: 1, Criterion: 1, Width: 60})
	assert.Contains(t, second, "second attempt")
	assert.Contains(t, second, "2/3")
	assert.Contains(t, second, "Result (0.5/1)")
	assert.Contains(t, second, "Solve it")
	assert.Contains(t, second, "Human Judge 2 (1/1)")
	assert.NotContains(t, second, "Write the ODE")

	clamped := Render("h", rec, Options{Run: 9, Criterion: -3})
	assert.Contains(t, clamped, "Write the ODE")
}

func TestRenderWithoutRuns(t *testing.T) {
	out := Render("h", Record{Statement: "s"}, Options{})
	assert.Contains(t, out, "No runs recorded")
	assert.False(t, strings.Contains(out, "Run 1"))
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, RenderError("h"), ErrorText)
	assert.Contains(t, RenderLoading("h", "*"), "Loading...")
}
