package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/skillspace/pkg/models"
)

func TestDeriveDisplayStats(t *testing.T) {
	tests := []struct {
		xp    int
		rank  models.Rank
		level int
	}{
		{0, models.RankBronze, 1},
		{99, models.RankBronze, 1},
		{100, models.RankBronze, 2},
		{299, models.RankBronze, 3},
		{300, models.RankSilver, 4},
		{599, models.RankSilver, 6},
		{600, models.RankGold, 7},
		{1099, models.RankGold, 11},
		{1100, models.RankPlatinum, 12},
		{1450, models.RankPlatinum, 15},
	}

	for _, tt := range tests {
		got := DeriveDisplayStats(tt.xp)
		assert.Equal(t, tt.rank, got.Rank, "rank for xp=%d", tt.xp)
		assert.Equal(t, tt.level, got.Level, "level for xp=%d", tt.xp)
	}
}

func TestLevelFormula(t *testing.T) {
	for xp := 0; xp <= 5000; xp++ {
		if got := DeriveDisplayStats(xp).Level; got != xp/100+1 {
			t.Fatalf("xp=%d: expected level %d, got %d", xp, xp/100+1, got)
		}
	}
}

func TestRankIsMonotonic(t *testing.T) {
	prev := RankOrder(DeriveDisplayStats(0).Rank)
	for xp := 1; xp <= 5000; xp++ {
		cur := RankOrder(DeriveDisplayStats(xp).Rank)
		if cur < prev {
			t.Fatalf("rank dropped at xp=%d", xp)
		}
		prev = cur
	}
}
