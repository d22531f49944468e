// internal/trace/types.go
// Package trace models a single model's output for one competition task and
// renders it, with human-judge grading, for the terminal.
package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is the payload returned for one (competition, model, task) triple.
type Record struct {
	Statement         string   `json:"statement"`
	GoldAnswer        Answer   `json:"gold_answer"`
	ContaminationInfo string   `json:"contamination_info,omitempty"`
	Outputs           []Output `json:"model_outputs"`
}

// Output is one run of the model on the task.
type Output struct {
	ParsedAnswer Answer     `json:"parsed_answer"`
	Correct      bool       `json:"correct"`
	Solution     string     `json:"solution"`
	Grade        *float64   `json:"grade,omitempty"`
	MaxGrade     float64    `json:"max_grade,omitempty"`
	Judgment     []Judgment `json:"judgment,omitempty"`
}

// Judgment is one human judge's grading of an output.
type Judgment struct {
	Details []Criterion `json:"details"`
}

// Criterion is one line of a grading scheme as scored by a judge.
type Criterion struct {
	Title             string  `json:"title"`
	Points            float64 `json:"points"`
	MaxPoints         float64 `json:"max_points"`
	Desc              string  `json:"desc"`
	GradingSchemeDesc string  `json:"grading_scheme_desc"`
}

// Answer is a free-form answer that may arrive as a string, a number or null.
type Answer struct {
	Text  string
	Valid bool
}

// Present reports whether the answer carries displayable text.
func (a Answer) Present() bool {
	return a.Valid && a.Text != ""
}

// UnmarshalJSON accepts strings and numbers; null leaves the answer unset.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Answer{Text: s, Valid: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("answer must be a string or number: %w", err)
	}
	*a = Answer{Text: n.String(), Valid: true}
	return nil
}

// MarshalJSON writes the answer as a string, or null when unset.
func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Text)
}
