package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/skillspace/pkg/models"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Skills, 5)
	assert.Len(t, c.Challenges, 40)
	assert.Len(t, c.DailyMissions, 3)
	assert.Len(t, c.WarRoomMissions, 2)
	assert.Len(t, c.Guilds, 3)

	cpp, ok := c.Skill("cpp")
	require.True(t, ok)
	assert.Equal(t, models.CategoryLanguages, cpp.Category)
	assert.Len(t, cpp.Concepts, 5)

	aiml, _ := c.Skill("aiml")
	assert.Equal(t, models.CategoryAIML, aiml.Category)

	d1 := c.DailyMissions[0]
	assert.Equal(t, "d1", d1.ID)
	assert.Equal(t, 50, d1.RewardXP)
	assert.False(t, d1.IsCompleted)

	m1, ok := c.WarRoomMission("m1")
	require.True(t, ok)
	assert.Equal(t, 1200, m1.Reward)
	assert.Equal(t, models.MissionCoding, m1.Type)

	c20, ok := c.Challenge("c20")
	require.True(t, ok)
	assert.Contains(t, c20.StarterCode, `'\0'`)
}

func TestValidateRejectsNegativeRewards(t *testing.T) {
	c := &Catalog{
		DailyMissions:   []models.DailyMission{{ID: "d1", Title: "x", RewardXP: -5}},
		WarRoomMissions: []models.WarRoomMission{{ID: "m1", Reward: -1, Type: models.MissionReview}},
	}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative reward -5")
	assert.Contains(t, err.Error(), "negative reward -1")
}

func TestValidateDuplicates(t *testing.T) {
	c := &Catalog{
		Skills: []models.Skill{{ID: "cpp"}, {ID: "cpp"}},
		Guilds: []models.Guild{{ID: ""}},
	}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate skill id "cpp"`)
	assert.Contains(t, err.Error(), "guild without id")
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("skills: ["))
	assert.Error(t, err)
}

func TestBoilerplate(t *testing.T) {
	c := MustDefault()
	ch, _ := c.Challenge("c1")

	assert.Equal(t, ch.StarterCode, Boilerplate(LanguageCPP, ch))
	assert.True(t, strings.HasPrefix(Boilerplate(LanguagePython, ch), "# Mission: 1. Hello Guild"))
	assert.Contains(t, Boilerplate(LanguageJava, ch), "public class Main")
	assert.Contains(t, Boilerplate(LanguageC, ch), `printf("Logic Ready\n");`)

	noStarter := models.CodeChallenge{Title: "X"}
	assert.Contains(t, Boilerplate(LanguageCPP, noStarter), "C++ System Active")
}

func TestParseLanguage(t *testing.T) {
	for in, want := range map[string]Language{"": LanguageCPP, "python": LanguagePython, "Java": LanguageJava, "c": LanguageC, "cpp": LanguageCPP} {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseLanguage("rust")
	assert.Error(t, err)
}
