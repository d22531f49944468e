// internal/leaderboard/columns.go
package leaderboard

import (
	"strconv"
	"strings"
)

// DefaultOverallID is the id of the cross-competition aggregate view.
const DefaultOverallID = "overall"

// Columns returns the ordered logical column keys for a competition. The
// aggregate view, named aggregateID or DefaultOverallID when empty, starts
// with the synthesized Avg column followed by problemCount-1 task indices;
// every other competition lists 1..problemCount.
func Columns(competition, aggregateID string, problemCount int) []string {
	if aggregateID == "" {
		aggregateID = DefaultOverallID
	}
	if problemCount <= 0 {
		return nil
	}
	keys := make([]string, 0, problemCount)
	if competition == aggregateID {
		keys = append(keys, FieldAvg)
		for i := 1; i < problemCount; i++ {
			keys = append(keys, strconv.Itoa(i))
		}
		return keys
	}
	for i := 1; i <= problemCount; i++ {
		keys = append(keys, strconv.Itoa(i))
	}
	return keys
}

// ProblemTitle returns the header text for the column at position i: the
// declared problem name with dashes removed, or i+1.
func ProblemTitle(info CompetitionInfo, i int) string {
	if i >= 0 && i < len(info.ProblemNames) {
		if name := string(info.ProblemNames[i]); name != "" {
			return strings.ReplaceAll(name, "-", "")
		}
	}
	return strconv.Itoa(i + 1)
}

// ProblemName returns the undecorated name for a 1-based task, or "#task".
func ProblemName(info CompetitionInfo, task int) string {
	if task >= 1 && task <= len(info.ProblemNames) {
		if name := string(info.ProblemNames[task-1]); name != "" {
			return name
		}
	}
	return "#" + strconv.Itoa(task)
}
