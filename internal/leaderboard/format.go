// internal/leaderboard/format.go
package leaderboard

import (
	"math"
	"strconv"
)

// FormatPercent renders "12.34%" or N/A.
func FormatPercent(s Score) string {
	if !s.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(s.Value, 'f', 2, 64) + "%"
}

// FormatDollars renders "$1.23" or N/A.
func FormatDollars(s Score) string {
	if !s.Valid {
		return NotAvailable
	}
	return "$" + strconv.FormatFloat(s.Value, 'f', 2, 64)
}

// FormatCount renders a whole number or N/A.
func FormatCount(s Score) string {
	if !s.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(s.Value, 'f', 0, 64)
}

// FormatWholePercent renders "80%" after rounding, or N/A.
func FormatWholePercent(s Score) string {
	if !s.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(math.Round(s.Value), 'f', 0, 64) + "%"
}

// formatPlainPercent keeps the value as stored, appending % when present.
func formatPlainPercent(s Score) string {
	if !s.Valid {
		return NotAvailable
	}
	return s.String() + "%"
}
