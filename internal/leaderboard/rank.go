// internal/leaderboard/rank.go
package leaderboard

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissingPrimary is returned when a row has no usable primary score.
var ErrMissingPrimary = errors.New("missing primary score")

// Rank sorts rows in place by the primary score, highest first. Equal scores
// fall back to cost, cheapest first, with absent costs after present ones.
// The sort is stable, so rows that still tie keep their input order.
func Rank(rows []ModelRow, primary string) error {
	for _, row := range rows {
		if !row.Value(primary).Valid {
			return fmt.Errorf("rank by %q: model %q: %w", primary, row.Model, ErrMissingPrimary)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rankedBefore(rows[i], rows[j], primary)
	})
	return nil
}

func rankedBefore(a, b ModelRow, primary string) bool {
	sa := a.Value(primary).Value
	sb := b.Value(primary).Value
	if sa != sb {
		return sa > sb
	}

	ca, cb := a.Value(FieldCost), b.Value(FieldCost)
	switch {
	case ca.Valid && cb.Valid:
		return ca.Value < cb.Value
	case ca.Valid:
		return true
	default:
		return false
	}
}
