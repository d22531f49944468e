// internal/leaderboard/types.go
package leaderboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// QuestionKey is the field that identifies the task on a QuestionRow.
const QuestionKey = "question"

// Well-known row and field keys used by the arena payloads.
const (
	FieldAvg          = "Avg"
	FieldAcc          = "Acc"
	FieldCost         = "Cost"
	FieldRank         = "Rank"
	FieldInputCost    = "Input Cost"
	FieldInputTokens  = "Input Tokens"
	FieldOutputCost   = "Output Cost"
	FieldOutputTokens = "Output Tokens"
)

// QuestionRow is one task within a competition with one value per model.
// Models preserves the key order of the JSON object it was decoded from.
type QuestionRow struct {
	Question string
	Models   []string
	Values   map[string]Score
}

// Set stores a model value, keeping first-seen key order.
func (r *QuestionRow) Set(model string, s Score) {
	if r.Values == nil {
		r.Values = make(map[string]Score)
	}
	if _, ok := r.Values[model]; !ok {
		r.Models = append(r.Models, model)
	}
	r.Values[model] = s
}

// UnmarshalJSON decodes a flat object, reading keys in document order so the
// first-seen model ordering survives decoding.
func (r *QuestionRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("question row: expected object, got %v", tok)
	}

	row := QuestionRow{Values: make(map[string]Score)}
	seenQuestion := false
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("question row field %q: %w", key, err)
		}

		if key == QuestionKey {
			q, err := decodeLabel(raw)
			if err != nil {
				return fmt.Errorf("question row: %w", err)
			}
			row.Question = q
			seenQuestion = true
			continue
		}

		var s Score
		if err := s.UnmarshalJSON(raw); err != nil {
			s = Score{}
		}
		row.Set(key, s)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if !seenQuestion {
		return errors.New("question row: missing \"question\" field")
	}
	*r = row
	return nil
}

// MarshalJSON writes the question field followed by the model values in order.
func (r QuestionRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	q, err := encodeLabel(r.Question)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"question":`)
	buf.Write(q)
	for _, m := range r.Models {
		key, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		val, err := r.Values[m].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ModelRow is one model's results within a competition, keyed by task.
type ModelRow struct {
	Model  string
	Fields map[string]Score
}

// Get returns the stored value and whether the key was ever set.
func (m ModelRow) Get(key string) (Score, bool) {
	s, ok := m.Fields[key]
	return s, ok
}

// Value returns the stored value, absent when unset.
func (m ModelRow) Value(key string) Score {
	return m.Fields[key]
}

// CompetitionInfo is the static per-competition metadata.
type CompetitionInfo struct {
	NiceName          string                `json:"nice_name"`
	Index             int                   `json:"index"`
	Type              string                `json:"type,omitempty"`
	NumProblems       int                   `json:"num_problems"`
	ProblemNames      []Label               `json:"problem_names,omitempty"`
	ProblemDifficulty map[string]Difficulty `json:"problem_difficulty,omitempty"`
	MedalThresholds   Thresholds            `json:"medal_thresholds,omitempty"`
	Judge             bool                  `json:"judge"`
	DefaultOpen       bool                  `json:"default_open,omitempty"`
}

// DisplayName returns the nice name, falling back to the id.
func (c CompetitionInfo) DisplayName(id string) string {
	if strings.TrimSpace(c.NiceName) != "" {
		return c.NiceName
	}
	return id
}

// Label is a problem identifier that may be written as a string or a number.
type Label string

// UnmarshalJSON accepts a JSON string or number.
func (l *Label) UnmarshalJSON(data []byte) error {
	s, err := decodeLabel(data)
	if err != nil {
		return err
	}
	*l = Label(s)
	return nil
}

// Difficulty is a 0..100 rating that may arrive as a number or numeric string.
type Difficulty struct {
	Value int
	Valid bool
}

// UnmarshalJSON accepts numbers and numeric strings, truncating like parseInt.
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	s, err := decodeLabel(data)
	if err != nil {
		return err
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		*d = Difficulty{}
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Difficulty{Value: int(f), Valid: true}
		return nil
	}
	*d = Difficulty{}
	return nil
}

// MarshalJSON writes the rating as a number, or null when absent.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Value)
}

// Thresholds holds the gold, silver and bronze cutoffs in descending order.
type Thresholds []float64

func decodeLabel(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", fmt.Errorf("label must be a string or number: %w", err)
	}
	return n.String(), nil
}

func encodeLabel(s string) ([]byte, error) {
	if n, err := strconv.Atoi(s); err == nil && strconv.Itoa(n) == s {
		return []byte(s), nil
	}
	return json.Marshal(s)
}
