// internal/leaderboard/dataset.go
package leaderboard

import (
	"errors"
	"sort"
)

// ErrUnknownCompetition is returned when a competition id has no data.
var ErrUnknownCompetition = errors.New("unknown competition")

// Dataset is everything fetched at startup. It is built once and only read
// afterwards; tables are rebuilt from it on every competition selection.
type Dataset struct {
	Results   map[string][]QuestionRow
	Info      map[string]CompetitionInfo
	Secondary map[string][]QuestionRow
	Dates     CompetitionDates
	// OverallID names the aggregate view; empty means DefaultOverallID.
	OverallID string
}

// AggregateID returns the id of the aggregate view.
func (d Dataset) AggregateID() string {
	if d.OverallID != "" {
		return d.OverallID
	}
	return DefaultOverallID
}

// IsAggregate reports whether competition is the aggregate view.
func (d Dataset) IsAggregate(competition string) bool {
	return competition == d.AggregateID()
}

// Competitions returns the competitions with results, ordered by their
// declared index and then by id.
func (d Dataset) Competitions() []string {
	ids := make([]string, 0, len(d.Results))
	for id := range d.Results {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := d.Info[ids[i]].Index, d.Info[ids[j]].Index
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}

// RealCompetitions returns Competitions without the aggregate view.
func (d Dataset) RealCompetitions() []string {
	all := d.Competitions()
	out := make([]string, 0, len(all))
	for _, id := range all {
		if !d.IsAggregate(id) {
			out = append(out, id)
		}
	}
	return out
}

// DefaultCompetition picks the competition to open first: preferred when it
// exists, else the first one marked default_open, else the last in order.
func (d Dataset) DefaultCompetition(preferred string) string {
	if _, ok := d.Results[preferred]; ok && preferred != "" {
		return preferred
	}
	ordered := d.Competitions()
	if len(ordered) == 0 {
		return ""
	}
	for _, id := range ordered {
		if d.Info[id].DefaultOpen {
			return id
		}
	}
	return ordered[len(ordered)-1]
}

// OriginCompetition returns the competition whose metadata applies to the
// aggregate-view column at position i. Position 0 is the aggregate itself;
// position k maps to the k-th real competition in display order.
func (d Dataset) OriginCompetition(i int) string {
	if i <= 0 {
		return d.AggregateID()
	}
	comps := d.RealCompetitions()
	if i-1 < len(comps) {
		return comps[i-1]
	}
	return ""
}
