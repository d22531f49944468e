// internal/leaderboard/contamination.go
package leaderboard

import "sort"

// ContaminationWarning is shown once per view when any model is flagged.
const ContaminationWarning = "⚠️ Model was published after the competition date, making contamination possible."

// TimeData maps a model name to true when the model was published after the
// competition date.
type TimeData map[string]bool

// CompetitionDates maps competition ids to their TimeData.
type CompetitionDates map[string]TimeData

// Flagged reports whether model may have seen the competition's problems.
func (d CompetitionDates) Flagged(competition, model string) bool {
	return d[competition][model]
}

// AnyFlagged reports whether any model is flagged for the competition.
func (d CompetitionDates) AnyFlagged(competition string) bool {
	for _, flagged := range d[competition] {
		if flagged {
			return true
		}
	}
	return false
}

// FlaggedModels lists the flagged models of a competition in name order.
func (d CompetitionDates) FlaggedModels(competition string) []string {
	var out []string
	for model, flagged := range d[competition] {
		if flagged {
			out = append(out, model)
		}
	}
	sort.Strings(out)
	return out
}

// Warning returns the competition-level warning text, or "" when nothing is
// flagged. The aggregate view warns when any competition has a flag.
func (d CompetitionDates) Warning(competition string, aggregate bool) string {
	if !aggregate {
		if d.AnyFlagged(competition) {
			return ContaminationWarning
		}
		return ""
	}
	for id := range d {
		if d.AnyFlagged(id) {
			return ContaminationWarning
		}
	}
	return ""
}
