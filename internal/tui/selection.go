// internal/tui/selection.go
package tui

import "github.com/mwiater/arenaboard/internal/trace"

// Selection identifies the trace shown in the detail panel and the run and
// criterion currently displayed for it.
type Selection struct {
	Competition string
	Model       string
	Task        int
	Run         int
	Criterion   int
}

// nextRun moves to another run of rec, clamped to the recorded runs. The
// criterion resets because runs are graded independently.
func (s Selection) nextRun(rec trace.Record, delta int) Selection {
	if len(rec.Outputs) == 0 {
		return s
	}
	run := s.Run + delta
	if run < 0 {
		run = 0
	}
	if run >= len(rec.Outputs) {
		run = len(rec.Outputs) - 1
	}
	if run != s.Run {
		s.Run = run
		s.Criterion = 0
	}
	return s
}

// nextCriterion cycles through the grading criteria of the selected run.
func (s Selection) nextCriterion(rec trace.Record) Selection {
	n := rec.CriteriaCount(s.Run)
	if n == 0 {
		return s
	}
	s.Criterion = (s.Criterion + 1) % n
	return s
}
