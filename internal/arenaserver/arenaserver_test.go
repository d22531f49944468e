package arenaserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/mwiater/arenaboard/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answersCSV = `id,answer,difficulty
1a,42,20
1b,x^2,70
`

const runsCSV = `problem_idx,problem,model_name,idx_answer,answer,input_tokens,output_tokens,cost,input_cost_per_tokens,output_cost_per_tokens,parsed_answer,correct
1a,What is six times seven?,gpt 5,1,second,100,200,0.5,2,10,41,false
1a,What is six times seven?,gpt 5,0,first,100,200,0.5,2,10,42,true
1b,Square x.,gpt 5,0,x squared,50,50,0.25,2,10,x^2,true
1a,What is six times seven?,claude/opus,0,sure,10,10,0.1,0,15,,
bad,row,,0,,,,,,,,
`

func TestReadInputs(t *testing.T) {
	answers, err := ReadAnswers(strings.NewReader(answersCSV))
	require.NoError(t, err)
	assert.Equal(t, []ProblemAnswer{{ID: "1a", Answer: "42", Difficulty: "20"}, {ID: "1b", Answer: "x^2", Difficulty: "70"}}, answers)

	runs, err := ReadRuns(strings.NewReader(runsCSV))
	require.NoError(t, err)
	require.Len(t, runs, 4, "the row without a model is skipped")
	assert.Equal(t, "gpt 5", runs[0].Model)
	require.NotNil(t, runs[1].Correct)
	assert.True(t, *runs[1].Correct)
	assert.Nil(t, runs[3].ParsedAnswer)
	assert.Nil(t, runs[3].Correct)

	_, err = ReadRuns(strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)
	_, err = ReadAnswers(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadAnswersStripsByteOrderMark(t *testing.T) {
	answers, err := ReadAnswers(strings.NewReader("\uFEFF" + answersCSV))
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "1a", answers[0].ID)
}

func source(t *testing.T, c Competition) Source {
	t.Helper()
	answers, err := ReadAnswers(strings.NewReader(answersCSV))
	require.NoError(t, err)
	runs, err := ReadRuns(strings.NewReader(runsCSV))
	require.NoError(t, err)
	return Source{Competition: c, Answers: answers, Runs: runs}
}

func TestBuildSingleCompetition(t *testing.T) {
	c := Competition{Key: "ipho--ipho_2025", NiceName: "IPhO 2025", Index: 1, MedalThresholds: []float64{75, 50, 25}, Contaminated: []string{"claude/opus"}}
	p := Build("overall", nil, []Source{source(t, c)})

	_, hasOverall := p.Results["overall"]
	assert.False(t, hasOverall)

	rows := p.Results[c.Key]
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"1", "2", "Avg", "Cost"}, []string{rows[0].Question, rows[1].Question, rows[2].Question, rows[3].Question})
	assert.Equal(t, []string{"claude/opus", "gpt 5"}, rows[0].Models)
	assert.Equal(t, leaderboard.Some(50), rows[0].Values["gpt 5"])
	assert.Equal(t, leaderboard.Some(0), rows[1].Values["claude/opus"])
	assert.Equal(t, leaderboard.Some(75), rows[2].Values["gpt 5"])
	assert.InDelta(t, 1.25, rows[3].Values["gpt 5"].Value, 1e-9)

	info := p.Info[c.Key]
	assert.Equal(t, 2, info.NumProblems)
	assert.Equal(t, []leaderboard.Label{"1a", "1b"}, info.ProblemNames)
	assert.Equal(t, leaderboard.Difficulty{Value: 70, Valid: true}, info.ProblemDifficulty["1b"])

	assert.True(t, p.Dates.Flagged(c.Key, "claude/opus"))
	assert.False(t, p.Dates.Flagged(c.Key, "gpt 5"))

	models := leaderboard.Transpose(p.Secondary[c.Key])
	leaderboard.ApplyCost(models)
	byName := map[string]leaderboard.ModelRow{}
	for _, m := range models {
		byName[m.Model] = m
	}
	assert.InDelta(t, 250*2e-6+450*10e-6, byName["gpt 5"].Value(leaderboard.FieldCost).Value, 1e-12)
	assert.False(t, byName["claude/opus"].Value(leaderboard.FieldCost).Valid, "a zero input price leaves cost absent")

	rec, ok := p.Traces[TraceKey{Competition: c.Key, Model: "gpt 5", Task: 1}]
	require.True(t, ok)
	assert.Equal(t, "What is six times seven?", rec.Statement)
	assert.Equal(t, "42", rec.GoldAnswer.Text)
	require.Len(t, rec.Outputs, 2)
	assert.Equal(t, "first", rec.Outputs[0].Solution, "runs are ordered by idx_answer")
	assert.True(t, rec.Outputs[0].Correct)
	assert.Equal(t, trace.Answer{Text: "42", Valid: true}, rec.Outputs[0].ParsedAnswer)

	_, ok = p.Traces[TraceKey{Competition: c.Key, Model: "claude/opus", Task: 2}]
	assert.False(t, ok)
}

func TestBuildOverall(t *testing.T) {
	a := Competition{Key: "a", NiceName: "Comp-A", Index: 2, MedalThresholds: []float64{75, 50, 25}}
	b := Competition{Key: "b", NiceName: "Comp B", Index: 1, MedalThresholds: []float64{75, 50, 25}}
	srcB := source(t, b)
	srcB.Runs = srcB.Runs[:3]

	p := Build("overall", []float64{80, 60, 40}, []Source{source(t, a), srcB})

	info := p.Info["overall"]
	assert.Equal(t, 3, info.NumProblems)
	assert.Equal(t, []leaderboard.Label{"Avg", "Comp B", "Comp-A"}, info.ProblemNames)
	assert.Equal(t, leaderboard.Thresholds{80, 60, 40}, info.MedalThresholds)

	rows := p.Results["overall"]
	require.Len(t, rows, 4)
	assert.Equal(t, leaderboard.Some(75), rows[0].Values["gpt 5"])
	assert.Equal(t, leaderboard.Some(0), rows[0].Values["claude/opus"])
	assert.False(t, rows[1].Values["claude/opus"].Valid, "claude has no runs in b")
	assert.Equal(t, leaderboard.Some(1), rows[3].Values["gpt 5"])
	assert.Equal(t, leaderboard.Some(2), rows[3].Values["claude/opus"])

	d := leaderboard.Dataset{Results: p.Results, Info: p.Info, Secondary: p.Secondary, Dates: p.Dates}
	table, err := leaderboard.BuildCompetitionTable(d, "overall")
	require.NoError(t, err)
	assert.Equal(t, "b", table.Columns[1].Origin)
	assert.Equal(t, "gpt 5", table.Rows[0].Model)
}

func TestHandler(t *testing.T) {
	c := Competition{Key: "ipho", NiceName: "IPhO", Index: 1, MedalThresholds: []float64{75, 50, 25}}
	srv := httptest.NewServer(NewHandler(Build("overall", nil, []Source{source(t, c)})))
	t.Cleanup(srv.Close)

	get := func(path string) (*http.Response, map[string]any) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp, body
	}

	resp, body := get("/results")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "results")
	assert.Contains(t, body, "competition_info")

	resp, body = get("/competition_dates")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ipho")

	resp, body = get("/traces/ipho/claude%2Fopus/1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "What is six times seven?", body["statement"])

	resp, body = get("/traces/ipho/gpt%205/2")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = get("/traces/nope/gpt%205/1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "competition not found", body["error"])

	resp, body = get("/traces/ipho/gpt%205/9")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "trace not found", body["error"])

	resp, _ = get("/traces/ipho/gpt%205/abc")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9001
competitions:
  - key: ipho
    nice_name: IPhO 2025
    answers: data/answers.csv
    runs: /abs/runs.csv
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "overall", cfg.Overall)
	assert.Equal(t, []float64{75, 50, 25}, cfg.OverallThresholds)
	require.Len(t, cfg.Competitions, 1)
	assert.Equal(t, filepath.Join(dir, "data", "answers.csv"), cfg.Competitions[0].Answers)
	assert.Equal(t, "/abs/runs.csv", cfg.Competitions[0].Runs)
	assert.Equal(t, "FinalAnswer", cfg.Competitions[0].Type)

	require.NoError(t, os.WriteFile(path, []byte("competitions: []\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("competitions:\n  - key: overall\n    answers: a\n    runs: b\n"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "answers.csv"), []byte(answersCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "runs.csv"), []byte(runsCSV), 0o644))

	src, err := LoadSource(Competition{Key: "c", Answers: filepath.Join(dir, "answers.csv"), Runs: filepath.Join(dir, "runs.csv")})
	require.NoError(t, err)
	assert.Len(t, src.Answers, 2)
	assert.Len(t, src.Runs, 4)

	_, err = LoadSource(Competition{Key: "c", Answers: filepath.Join(dir, "missing.csv"), Runs: filepath.Join(dir, "runs.csv")})
	assert.Error(t, err)
}
