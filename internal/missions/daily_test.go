package missions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/skillspace/internal/progression"
	"github.com/example/skillspace/pkg/models"
)

func testDailies() []models.DailyMission {
	return []models.DailyMission{
		{ID: "d1", Title: "Neural Consultation", RewardXP: 50, Icon: "🧠"},
		{ID: "d2", Title: "C++ Logic Check", RewardXP: 30, Icon: "⚡"},
		{ID: "d3", Title: "War Room Drill", RewardXP: 100, IsCompleted: true, Icon: "⚔️"},
	}
}

func TestNewDailyStartsPending(t *testing.T) {
	d := NewDaily(testDailies())
	assert.Equal(t, 0, d.CompletedCount())
}

func TestClaimDailyMission(t *testing.T) {
	d := NewDaily(testDailies())
	state := progression.New(1450, 1200, 5)

	d2, state2, ok := d.Claim("d1", state)
	require.True(t, ok)
	assert.Equal(t, 1500, state2.XP)
	assert.Equal(t, 1250, state2.Points)
	assert.Equal(t, 6, state2.Streak)

	m, found := d2.Get("d1")
	require.True(t, found)
	assert.True(t, m.IsCompleted)

	// The previous snapshot still shows the mission as pending
	m, _ = d.Get("d1")
	assert.False(t, m.IsCompleted)

	d3, state3, ok := d2.Claim("d1", state2)
	assert.False(t, ok)
	assert.Equal(t, state2, state3)
	assert.Equal(t, d2.List(), d3.List())
}

func TestClaimUnknownMission(t *testing.T) {
	d := NewDaily(testDailies())
	state := progression.Default()

	d2, state2, ok := d.Claim("nope", state)
	assert.False(t, ok)
	assert.Equal(t, state, state2)
	assert.Equal(t, d.List(), d2.List())
}

func TestResetDailyMissions(t *testing.T) {
	d := NewDaily(testDailies())
	state := progression.Default()
	d, state, _ = d.Claim("d1", state)
	d, _, _ = d.Claim("d2", state)
	require.Equal(t, 2, d.CompletedCount())

	reset := d.Reset()
	assert.Equal(t, 0, reset.CompletedCount())
	assert.Equal(t, 2, d.CompletedCount())
}
