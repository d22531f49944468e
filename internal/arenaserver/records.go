// internal/arenaserver/records.go
package arenaserver

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// RunRecord is one model run on one problem.
type RunRecord struct {
	ProblemID         string
	Statement         string
	Model             string
	IdxAnswer         int
	Answer            string
	InputTokens       float64
	OutputTokens      float64
	Cost              float64
	InputCostPerMTok  float64
	OutputCostPerMTok float64
	ParsedAnswer      *string
	Correct           *bool
}

// ProblemAnswer is a gold answer in file order.
type ProblemAnswer struct {
	ID         string
	Answer     string
	Difficulty string
}

// ReadAnswers reads an id,answer[,difficulty] CSV, keeping file order.
func ReadAnswers(r io.Reader) ([]ProblemAnswer, error) {
	rows, idx, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if _, ok := idx["id"]; !ok {
		return nil, errors.New("answers: missing id column")
	}
	var out []ProblemAnswer
	for _, row := range rows {
		id := field(row, idx, "id")
		if id == "" {
			continue
		}
		out = append(out, ProblemAnswer{
			ID:         id,
			Answer:     field(row, idx, "answer"),
			Difficulty: field(row, idx, "difficulty"),
		})
	}
	return out, nil
}

// ReadRuns reads run records. Malformed rows are logged and skipped.
func ReadRuns(r io.Reader) ([]RunRecord, error) {
	rows, idx, err := readTable(r)
	if err != nil {
		return nil, err
	}
	for _, col := range []string{"problem_idx", "model_name"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("runs: missing %s column", col)
		}
	}

	var out []RunRecord
	for n, row := range rows {
		rec, err := parseRun(row, idx)
		if err != nil {
			log.Printf("runs: skipping row %d: %v", n+2, err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRun(row []string, idx map[string]int) (RunRecord, error) {
	rec := RunRecord{
		ProblemID: field(row, idx, "problem_idx"),
		Statement: field(row, idx, "problem"),
		Model:     field(row, idx, "model_name"),
		Answer:    field(row, idx, "answer"),
	}
	if rec.ProblemID == "" || rec.Model == "" {
		return RunRecord{}, errors.New("problem_idx and model_name are required")
	}

	var err error
	if rec.IdxAnswer, err = intField(row, idx, "idx_answer"); err != nil {
		return RunRecord{}, err
	}
	floats := []struct {
		name string
		dst  *float64
	}{
		{"input_tokens", &rec.InputTokens},
		{"output_tokens", &rec.OutputTokens},
		{"cost", &rec.Cost},
		{"input_cost_per_tokens", &rec.InputCostPerMTok},
		{"output_cost_per_tokens", &rec.OutputCostPerMTok},
	}
	for _, f := range floats {
		if *f.dst, err = floatField(row, idx, f.name); err != nil {
			return RunRecord{}, err
		}
	}

	if v, ok := optional(row, idx, "parsed_answer"); ok {
		rec.ParsedAnswer = &v
	}
	if v, ok := optional(row, idx, "correct"); ok {
		b := parseBool(v)
		rec.Correct = &b
	}
	return rec, nil
}

// readTable reads a headed CSV and returns the data rows and a header index.
func readTable(r io.Reader) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("empty csv")
	}
	idx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))] = i
	}
	return records[1:], idx, nil
}

func field(row []string, idx map[string]int, key string) string {
	i, ok := idx[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func optional(row []string, idx map[string]int, key string) (string, bool) {
	v := field(row, idx, key)
	return v, v != ""
}

func floatField(row []string, idx map[string]int, key string) (float64, error) {
	v := field(row, idx, key)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func intField(row []string, idx map[string]int, key string) (int, error) {
	f, err := floatField(row, idx, key)
	return int(f), err
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "t":
		return true
	default:
		return false
	}
}

// LoadSource reads the inputs of one competition from disk.
func LoadSource(c Competition) (Source, error) {
	answersFile, err := os.Open(c.Answers)
	if err != nil {
		return Source{}, err
	}
	defer answersFile.Close()
	answers, err := ReadAnswers(answersFile)
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", c.Answers, err)
	}

	runsFile, err := os.Open(c.Runs)
	if err != nil {
		return Source{}, err
	}
	defer runsFile.Close()
	runs, err := ReadRuns(runsFile)
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", c.Runs, err)
	}

	return Source{Competition: c, Answers: answers, Runs: runs}, nil
}
