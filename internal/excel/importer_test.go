package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/skillspace/pkg/models"
)

type memorySaver struct {
	missions   map[string]models.DailyMission
	challenges map[string]models.CodeChallenge
}

func newMemorySaver() *memorySaver {
	return &memorySaver{
		missions:   make(map[string]models.DailyMission),
		challenges: make(map[string]models.CodeChallenge),
	}
}

func (s *memorySaver) SaveMission(_ context.Context, m models.DailyMission, _ int) (bool, error) {
	_, ok := s.missions[m.ID]
	s.missions[m.ID] = m
	return !ok, nil
}

func (s *memorySaver) SaveChallenge(_ context.Context, c models.CodeChallenge, _ int) (bool, error) {
	_, ok := s.challenges[c.ID]
	s.challenges[c.ID] = c
	return !ok, nil
}

func TestImportMissionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missions.csv")
	data := "id,title,description,reward_xp,icon\n" +
		"d1,Code Warrior,Complete 3 challenges,150,⚔️\n" +
		"d2,Bad Reward,oops,-5,\n" +
		"\n" +
		"d1,Code Warrior,Complete 4 challenges,200,⚔️\n" +
		"d3,No Number,x,lots,\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	saver := newMemorySaver()
	cfg := DefaultImportConfig()
	cfg.FilePath = path

	result, err := NewImporter(saver, nil).Import(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 200, saver.missions["d1"].RewardXP)
	assert.NotContains(t, saver.missions, "d2")
}

func TestImportChallengesExcel(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"id", "title", "description", "difficulty", "starter_code"},
		{"c1", "Reverse", "Reverse an array", "basic", "void reverse() {\n}"},
		{"", "Missing id", "", "", ""},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	path := filepath.Join(t.TempDir(), "challenges.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	saver := newMemorySaver()
	cfg := DefaultImportConfig()
	cfg.FilePath = path
	cfg.Kind = KindChallenges

	result, err := NewImporter(saver, nil).Import(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "BASIC", saver.challenges["c1"].Difficulty)
	assert.Equal(t, "void reverse() {\n}", saver.challenges["c1"].StarterCode)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Challenges ")
	require.NoError(t, err)
	assert.Equal(t, KindChallenges, k)

	_, err = ParseKind("words")
	assert.Error(t, err)
}

func TestImportMissingFile(t *testing.T) {
	cfg := DefaultImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "missing.csv")
	_, err := NewImporter(newMemorySaver(), nil).Import(context.Background(), cfg)
	assert.Error(t, err)
}
