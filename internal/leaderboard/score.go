// internal/leaderboard/score.go
// Package leaderboard turns raw per-question benchmark rows into ranked,
// classified per-model tables.
package leaderboard

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// NotAvailable is the display text for an absent value.
const NotAvailable = "N/A"

// Score is an optional numeric value. The zero value is absent.
type Score struct {
	Value float64
	Valid bool
}

// Some returns a present Score holding v.
func Some(v float64) Score {
	return Score{Value: v, Valid: true}
}

// Absent returns a Score with no value.
func Absent() Score {
	return Score{}
}

// Float returns the value and whether it is present.
func (s Score) Float() (float64, bool) {
	return s.Value, s.Valid
}

// String formats the value with the shortest representation, or N/A.
func (s Score) String() string {
	if !s.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// MarshalJSON encodes an absent score as "N/A" to match the wire format.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts numbers as present values. null, "N/A" and any other
// string decode as absent; numeric strings are not parsed.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || data[0] == '"' {
		*s = Score{}
		return nil
	}
	if data[0] == 't' || data[0] == 'f' {
		*s = Score{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		*s = Score{}
		return nil
	}
	*s = Some(v)
	return nil
}

// roundTo rounds v to the given number of decimals, half away from zero.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
