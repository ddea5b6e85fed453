package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/skillspace/internal/catalog"
	"github.com/example/skillspace/pkg/models"
)

func connectMemory(t *testing.T) {
	t.Helper()
	require.NoError(t, Connect(Config{Type: "sqlite", Path: ":memory:"}))
	t.Cleanup(func() { Close() })
}

func TestMissionRepository(t *testing.T) {
	connectMemory(t)
	ctx := context.Background()
	repo := NewMissionRepository()

	created, err := repo.Upsert(ctx, models.DailyMission{ID: "d9", Title: "Night Owl", RewardXP: 70, Icon: "🦉"}, 1)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Upsert(ctx, models.DailyMission{ID: "d9", Title: "Night Owl II", RewardXP: 80}, 1)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = repo.Upsert(ctx, models.DailyMission{ID: "d1", Title: "First", RewardXP: 10}, 0)
	require.NoError(t, err)

	missions, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, missions, 2)
	assert.Equal(t, "d1", missions[0].ID)
	assert.Equal(t, "Night Owl II", missions[1].Title)
	assert.Equal(t, 80, missions[1].RewardXP)

	require.NoError(t, repo.Delete(ctx, "d1"))
	missions, _ = repo.List(ctx)
	assert.Len(t, missions, 1)
}

func TestNegativeRewardRejectedByDatabase(t *testing.T) {
	connectMemory(t)
	_, err := NewMissionRepository().Upsert(context.Background(), models.DailyMission{ID: "bad", Title: "x", RewardXP: -1}, 0)
	assert.Error(t, err)
}

func TestLoadCatalogOverlay(t *testing.T) {
	connectMemory(t)
	ctx := context.Background()
	base := catalog.MustDefault()

	c, err := LoadCatalog(ctx, base)
	require.NoError(t, err)
	assert.Len(t, c.DailyMissions, 3, "empty tables keep bundled definitions")

	_, err = NewChallengeRepository().Upsert(ctx, models.CodeChallenge{ID: "x1", Title: "Custom", Difficulty: "BASIC"}, 0)
	require.NoError(t, err)
	_, err = NewMissionRepository().Upsert(ctx, models.DailyMission{ID: "dx", Title: "Custom", RewardXP: 5}, 0)
	require.NoError(t, err)

	c, err = LoadCatalog(ctx, base)
	require.NoError(t, err)
	require.Len(t, c.DailyMissions, 1)
	require.Len(t, c.Challenges, 1)
	assert.Equal(t, "dx", c.DailyMissions[0].ID)
	assert.Len(t, base.DailyMissions, 3, "base catalog must not change")
}

func TestConnectUnsupportedType(t *testing.T) {
	assert.Error(t, Connect(Config{Type: "oracle"}))
	assert.Error(t, Connect(Config{Type: "postgres"}))
}
