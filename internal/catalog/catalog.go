package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/skillspace/pkg/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the static reference data of the dashboard
type Catalog struct {
	Skills          []models.Skill          `yaml:"skills" json:"skills"`
	Challenges      []models.CodeChallenge  `yaml:"challenges" json:"challenges"`
	DailyMissions   []models.DailyMission   `yaml:"daily_missions" json:"daily_missions"`
	WarRoomMissions []models.WarRoomMission `yaml:"war_room_missions" json:"war_room_missions"`
	Guilds          []models.Guild          `yaml:"guilds" json:"guilds"`
}

// Default parses the catalog bundled with the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// MustDefault is Default for callers that cannot recover from a broken bundle
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("bundled catalog is invalid: %v", err))
	}
	return c
}

// LoadFile reads and validates a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids are present and unique and that rewards are non-negative.
// Grants trust these values, so this is where reward magnitudes are enforced.
func (c *Catalog) Validate() error {
	var errs []error

	seen := make(map[string]bool)
	check := func(kind, id string) {
		key := kind + "/" + id
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("%s without id", kind))
		case seen[key]:
			errs = append(errs, fmt.Errorf("duplicate %s id %q", kind, id))
		}
		seen[key] = true
	}

	for _, s := range c.Skills {
		check("skill", s.ID)
		if s.Progress < 0 || s.Progress > 100 {
			errs = append(errs, fmt.Errorf("skill %q: progress %d out of range", s.ID, s.Progress))
		}
	}
	for _, ch := range c.Challenges {
		check("challenge", ch.ID)
	}
	for _, m := range c.DailyMissions {
		check("daily mission", m.ID)
		if err := ValidateDailyMission(m); err != nil {
			errs = append(errs, err)
		}
	}
	for _, m := range c.WarRoomMissions {
		check("war room mission", m.ID)
		if err := ValidateWarRoomMission(m); err != nil {
			errs = append(errs, err)
		}
	}
	for _, g := range c.Guilds {
		check("guild", g.ID)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateDailyMission checks a single daily mission definition
func ValidateDailyMission(m models.DailyMission) error {
	if m.Title == "" {
		return fmt.Errorf("daily mission %q: title is required", m.ID)
	}
	if m.RewardXP < 0 {
		return fmt.Errorf("daily mission %q: negative reward %d", m.ID, m.RewardXP)
	}
	return nil
}

// ValidateWarRoomMission checks a single war room mission definition
func ValidateWarRoomMission(m models.WarRoomMission) error {
	if m.Reward < 0 {
		return fmt.Errorf("war room mission %q: negative reward %d", m.ID, m.Reward)
	}
	switch m.Type {
	case models.MissionCoding, models.MissionLearning, models.MissionReview:
	default:
		return fmt.Errorf("war room mission %q: unknown type %q", m.ID, m.Type)
	}
	if m.CurrentSquad < 0 || m.SquadCapacity < m.CurrentSquad {
		return fmt.Errorf("war room mission %q: squad %d/%d", m.ID, m.CurrentSquad, m.SquadCapacity)
	}
	return nil
}

// Skill returns a skill by id
func (c *Catalog) Skill(id string) (models.Skill, bool) {
	for _, s := range c.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return models.Skill{}, false
}

// Challenge returns a challenge by id
func (c *Catalog) Challenge(id string) (models.CodeChallenge, bool) {
	for _, ch := range c.Challenges {
		if ch.ID == id {
			return ch, true
		}
	}
	return models.CodeChallenge{}, false
}

// WarRoomMission returns a war room mission by id
func (c *Catalog) WarRoomMission(id string) (models.WarRoomMission, bool) {
	for _, m := range c.WarRoomMissions {
		if m.ID == id {
			return m, true
		}
	}
	return models.WarRoomMission{}, false
}

// WithDailyMissions returns a copy of the catalog whose daily missions are
// replaced by defs. Used when definitions come from the database.
func (c *Catalog) WithDailyMissions(defs []models.DailyMission) *Catalog {
	next := *c
	next.DailyMissions = defs
	return &next
}

// WithChallenges returns a copy of the catalog with challenges replaced
func (c *Catalog) WithChallenges(challenges []models.CodeChallenge) *Catalog {
	next := *c
	next.Challenges = challenges
	return &next
}
