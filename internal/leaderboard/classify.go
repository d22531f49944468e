// internal/leaderboard/classify.go
package leaderboard

// Tier is the color bucket of a per-task cell.
type Tier int

const (
	// TierNone covers scores below 1 and absent scores.
	TierNone Tier = iota
	// TierWeak covers [1, 25).
	TierWeak
	// TierMid covers [25, 75].
	TierMid
	// TierStrong covers scores above 75.
	TierStrong
)

// String returns the tier tag.
func (t Tier) String() string {
	switch t {
	case TierStrong:
		return "strong"
	case TierMid:
		return "mid"
	case TierWeak:
		return "weak"
	default:
		return "none"
	}
}

// MarshalText encodes the tier as its tag.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a tier tag; unknown tags are TierNone.
func (t *Tier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "strong":
		*t = TierStrong
	case "mid":
		*t = TierMid
	case "weak":
		*t = TierWeak
	default:
		*t = TierNone
	}
	return nil
}

// Color returns the tier's display color as a hex string.
func (t Tier) Color() string {
	switch t {
	case TierStrong:
		return "#00ff00"
	case TierMid:
		return "#ffff00"
	case TierWeak:
		return "#ff7d00"
	default:
		return "#ff0000"
	}
}

// ColorTier buckets a score. 75 itself is mid, not strong; 25 is mid.
func ColorTier(score float64) Tier {
	switch {
	case score > 75:
		return TierStrong
	case score >= 25:
		return TierMid
	case score >= 1:
		return TierWeak
	default:
		return TierNone
	}
}

// ColorTierFor buckets an optional score; absent scores are TierNone.
func ColorTierFor(s Score) Tier {
	if !s.Valid {
		return TierNone
	}
	return ColorTier(s.Value)
}

// Medal is the award tier of an aggregate-view cell.
type Medal int

const (
	MedalNone Medal = iota
	MedalBronze
	MedalSilver
	MedalGold
)

// String returns the medal tag.
func (m Medal) String() string {
	switch m {
	case MedalGold:
		return "gold"
	case MedalSilver:
		return "silver"
	case MedalBronze:
		return "bronze"
	default:
		return "none"
	}
}

// MarshalText encodes the medal as its tag.
func (m Medal) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a medal tag; unknown tags are MedalNone.
func (m *Medal) UnmarshalText(text []byte) error {
	switch string(text) {
	case "gold":
		*m = MedalGold
	case "silver":
		*m = MedalSilver
	case "bronze":
		*m = MedalBronze
	default:
		*m = MedalNone
	}
	return nil
}

// Symbol returns the medal emoji, or an empty string for no medal.
func (m Medal) Symbol() string {
	switch m {
	case MedalGold:
		return "🥇"
	case MedalSilver:
		return "🥈"
	case MedalBronze:
		return "🥉"
	default:
		return ""
	}
}

// MedalFor classifies a score against [gold, silver, bronze] cutoffs.
// Ineligible models and incomplete threshold lists never receive a medal.
func MedalFor(score float64, thresholds Thresholds, eligible bool) Medal {
	if !eligible || len(thresholds) < 3 {
		return MedalNone
	}
	switch {
	case score >= thresholds[0]:
		return MedalGold
	case score >= thresholds[1]:
		return MedalSilver
	case score >= thresholds[2]:
		return MedalBronze
	default:
		return MedalNone
	}
}

// DifficultyClass buckets a 0..100 problem rating into easy, medium or hard.
func DifficultyClass(rating int) string {
	switch {
	case rating <= 33:
		return "easy"
	case rating <= 66:
		return "medium"
	default:
		return "hard"
	}
}
