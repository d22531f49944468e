// internal/arenaserver/build.go
package arenaserver

import (
	"math"
	"sort"
	"strconv"

	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/mwiater/arenaboard/internal/trace"
)

// Source is one competition together with its loaded inputs.
type Source struct {
	Competition Competition
	Answers     []ProblemAnswer
	Runs        []RunRecord
}

// TraceKey addresses one trace.
type TraceKey struct {
	Competition string
	Model       string
	Task        int
}

// Payloads holds every response body the server can produce.
type Payloads struct {
	Results   map[string][]leaderboard.QuestionRow
	Info      map[string]leaderboard.CompetitionInfo
	Secondary map[string][]leaderboard.QuestionRow
	Dates     leaderboard.CompetitionDates
	Traces    map[TraceKey]trace.Record
}

type modelTotals struct {
	inputTokens  float64
	outputTokens float64
	cost         float64
	inputPrice   *float64
	outputPrice  *float64
}

// Build derives the payloads of every source. With two or more competitions
// an aggregate view named overall is added.
func Build(overall string, overallThresholds []float64, sources []Source) Payloads {
	p := Payloads{
		Results:   make(map[string][]leaderboard.QuestionRow),
		Info:      make(map[string]leaderboard.CompetitionInfo),
		Secondary: make(map[string][]leaderboard.QuestionRow),
		Dates:     make(leaderboard.CompetitionDates),
		Traces:    make(map[TraceKey]trace.Record),
	}
	for _, src := range sources {
		buildCompetition(&p, src)
	}
	if len(sources) > 1 {
		buildOverall(&p, overall, overallThresholds, sources)
	}
	return p
}

func buildCompetition(p *Payloads, src Source) {
	c := src.Competition

	grouped := make(map[string]map[string][]RunRecord)
	totals := make(map[string]*modelTotals)
	for _, r := range src.Runs {
		if grouped[r.Model] == nil {
			grouped[r.Model] = make(map[string][]RunRecord)
			totals[r.Model] = &modelTotals{}
		}
		grouped[r.Model][r.ProblemID] = append(grouped[r.Model][r.ProblemID], r)

		t := totals[r.Model]
		t.inputTokens += r.InputTokens
		t.outputTokens += r.OutputTokens
		t.cost += r.Cost
		if t.inputPrice == nil {
			v := r.InputCostPerMTok
			t.inputPrice = &v
		}
		if t.outputPrice == nil {
			v := r.OutputCostPerMTok
			t.outputPrice = &v
		}
	}
	models := make([]string, 0, len(grouped))
	for m := range grouped {
		models = append(models, m)
	}
	sort.Strings(models)

	var rows []leaderboard.QuestionRow
	sums := make(map[string]float64)
	for i, answer := range src.Answers {
		row := leaderboard.QuestionRow{Question: strconv.Itoa(i + 1)}
		for _, m := range models {
			acc := accuracy(grouped[m][answer.ID])
			sums[m] += acc
			row.Set(m, leaderboard.Some(acc))
		}
		rows = append(rows, row)
	}

	avg := leaderboard.QuestionRow{Question: leaderboard.FieldAvg}
	cost := leaderboard.QuestionRow{Question: leaderboard.FieldCost}
	for _, m := range models {
		mean := 0.0
		if len(src.Answers) > 0 {
			mean = sums[m] / float64(len(src.Answers))
		}
		avg.Set(m, leaderboard.Some(mean))
		cost.Set(m, leaderboard.Some(totals[m].cost))
	}
	p.Results[c.Key] = append(rows, avg, cost)

	info := leaderboard.CompetitionInfo{
		NiceName:        c.NiceName,
		Index:           c.Index,
		Type:            c.Type,
		NumProblems:     len(src.Answers),
		MedalThresholds: leaderboard.Thresholds(c.MedalThresholds),
		Judge:           c.Judge,
		DefaultOpen:     c.DefaultOpen,
	}
	for _, a := range src.Answers {
		info.ProblemNames = append(info.ProblemNames, leaderboard.Label(a.ID))
		if d, err := strconv.ParseFloat(a.Difficulty, 64); err == nil {
			if info.ProblemDifficulty == nil {
				info.ProblemDifficulty = make(map[string]leaderboard.Difficulty)
			}
			info.ProblemDifficulty[a.ID] = leaderboard.Difficulty{Value: int(d), Valid: true}
		}
	}
	p.Info[c.Key] = info

	p.Secondary[c.Key] = secondaryRows(models, totals, avg)

	flags := make(leaderboard.TimeData, len(models))
	for _, m := range models {
		flags[m] = false
	}
	for _, m := range c.Contaminated {
		flags[m] = true
	}
	p.Dates[c.Key] = flags

	for i, answer := range src.Answers {
		for _, m := range models {
			runs := append([]RunRecord(nil), grouped[m][answer.ID]...)
			if len(runs) == 0 {
				continue
			}
			sort.SliceStable(runs, func(a, b int) bool { return runs[a].IdxAnswer < runs[b].IdxAnswer })
			rec := trace.Record{
				Statement:  runs[0].Statement,
				GoldAnswer: trace.Answer{Text: answer.Answer, Valid: true},
			}
			for _, r := range runs {
				out := trace.Output{
					Correct:  r.Correct != nil && *r.Correct,
					Solution: r.Answer,
				}
				if r.ParsedAnswer != nil {
					out.ParsedAnswer = trace.Answer{Text: *r.ParsedAnswer, Valid: true}
				}
				rec.Outputs = append(rec.Outputs, out)
			}
			p.Traces[TraceKey{Competition: c.Key, Model: m, Task: i + 1}] = rec
		}
	}
}

// accuracy is the percentage of runs marked correct, 0 without runs.
func accuracy(runs []RunRecord) float64 {
	if len(runs) == 0 {
		return 0
	}
	correct := 0
	for _, r := range runs {
		if r.Correct != nil && *r.Correct {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(runs))
}

// secondaryRows emits token totals and per-token prices so that
// price*tokens on each side gives the dollar cost of the run.
func secondaryRows(models []string, totals map[string]*modelTotals, avg leaderboard.QuestionRow) []leaderboard.QuestionRow {
	inTokens := leaderboard.QuestionRow{Question: leaderboard.FieldInputTokens}
	inCost := leaderboard.QuestionRow{Question: leaderboard.FieldInputCost}
	outTokens := leaderboard.QuestionRow{Question: leaderboard.FieldOutputTokens}
	outCost := leaderboard.QuestionRow{Question: leaderboard.FieldOutputCost}
	acc := leaderboard.QuestionRow{Question: leaderboard.FieldAcc}

	for _, m := range models {
		t := totals[m]
		inTokens.Set(m, leaderboard.Some(t.inputTokens))
		inCost.Set(m, leaderboard.Some(perToken(t.inputPrice)))
		outTokens.Set(m, leaderboard.Some(t.outputTokens))
		outCost.Set(m, leaderboard.Some(perToken(t.outputPrice)))
		acc.Set(m, avg.Values[m])
	}
	return []leaderboard.QuestionRow{inTokens, inCost, outTokens, outCost, acc}
}

func perToken(perMTok *float64) float64 {
	if perMTok == nil {
		return 0
	}
	return *perMTok / 1_000_000
}

// buildOverall synthesizes the aggregate view: column k holds each model's
// average in the k-th competition by index, Avg is the mean of those.
func buildOverall(p *Payloads, overall string, thresholds []float64, sources []Source) {
	comps := make([]Competition, 0, len(sources))
	for _, s := range sources {
		comps = append(comps, s.Competition)
	}
	sort.SliceStable(comps, func(i, j int) bool {
		if comps[i].Index != comps[j].Index {
			return comps[i].Index < comps[j].Index
		}
		return comps[i].Key < comps[j].Key
	})

	var models []string
	seen := make(map[string]bool)
	averages := make(map[string]map[string]float64)
	for _, c := range comps {
		rows := p.Results[c.Key]
		avg := rows[len(rows)-2]
		averages[c.Key] = make(map[string]float64)
		for _, m := range avg.Models {
			averages[c.Key][m] = avg.Values[m].Value
			if !seen[m] {
				seen[m] = true
				models = append(models, m)
			}
		}
	}

	avgRow := leaderboard.QuestionRow{Question: leaderboard.FieldAvg}
	perComp := make([]leaderboard.QuestionRow, len(comps))
	for k := range comps {
		perComp[k] = leaderboard.QuestionRow{Question: strconv.Itoa(k + 1)}
	}
	means := make(map[string]float64, len(models))
	for _, m := range models {
		var sum float64
		var n int
		for k, c := range comps {
			v, ok := averages[c.Key][m]
			if !ok {
				perComp[k].Set(m, leaderboard.Absent())
				continue
			}
			perComp[k].Set(m, leaderboard.Some(v))
			sum += v
			n++
		}
		if n > 0 {
			means[m] = sum / float64(n)
		}
		avgRow.Set(m, leaderboard.Some(means[m]))
	}

	ranked := append([]string(nil), models...)
	sort.SliceStable(ranked, func(i, j int) bool { return means[ranked[i]] > means[ranked[j]] })
	rank := leaderboard.QuestionRow{Question: leaderboard.FieldRank}
	positions := make(map[string]int, len(ranked))
	for i, m := range ranked {
		if i > 0 && math.Abs(means[m]-means[ranked[i-1]]) < 1e-9 {
			positions[m] = positions[ranked[i-1]]
			continue
		}
		positions[m] = i + 1
	}
	for _, m := range models {
		rank.Set(m, leaderboard.Some(float64(positions[m])))
	}

	rows := append([]leaderboard.QuestionRow{avgRow}, perComp...)
	p.Results[overall] = append(rows, rank)

	names := []leaderboard.Label{leaderboard.FieldAvg}
	for _, c := range comps {
		name := c.NiceName
		if name == "" {
			name = c.Key
		}
		names = append(names, leaderboard.Label(name))
	}
	p.Info[overall] = leaderboard.CompetitionInfo{
		NiceName:        "Overall",
		Index:           0,
		Type:            "Aggregate",
		NumProblems:     len(comps) + 1,
		ProblemNames:    names,
		MedalThresholds: leaderboard.Thresholds(thresholds),
	}
}
