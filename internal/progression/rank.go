package progression

import "github.com/example/skillspace/pkg/models"

// Rank thresholds, inclusive lower bounds
const (
	SilverThreshold   = 300
	GoldThreshold     = 600
	PlatinumThreshold = 1100

	// XPPerLevel is the amount of XP between two levels
	XPPerLevel = 100
)

// DisplayStats is the rank and level derived from an XP total
type DisplayStats struct {
	Rank  models.Rank
	Level int
}

// DeriveDisplayStats computes rank and level from xp.
// Thresholds are checked from the highest tier down.
func DeriveDisplayStats(xp int) DisplayStats {
	return DisplayStats{
		Rank:  rankFor(xp),
		Level: xp/XPPerLevel + 1,
	}
}

func rankFor(xp int) models.Rank {
	switch {
	case xp >= PlatinumThreshold:
		return models.RankPlatinum
	case xp >= GoldThreshold:
		return models.RankGold
	case xp >= SilverThreshold:
		return models.RankSilver
	default:
		return models.RankBronze
	}
}

// RankOrder returns the position of a rank, BRONZE being 0
func RankOrder(r models.Rank) int {
	switch r {
	case models.RankSilver:
		return 1
	case models.RankGold:
		return 2
	case models.RankPlatinum:
		return 3
	default:
		return 0
	}
}
