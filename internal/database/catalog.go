package database

import (
	"context"
	"fmt"

	"github.com/example/skillspace/internal/catalog"
)

// LoadCatalog overlays database definitions on top of base. Tables that are
// empty leave the bundled definitions in place.
func LoadCatalog(ctx context.Context, base *catalog.Catalog) (*catalog.Catalog, error) {
	if DB == nil {
		return base, nil
	}

	dailies, err := NewMissionRepository().List(ctx)
	if err != nil {
		return nil, err
	}
	challenges, err := NewChallengeRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	c := base
	if len(dailies) > 0 {
		c = c.WithDailyMissions(dailies)
	}
	if len(challenges) > 0 {
		c = c.WithChallenges(challenges)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("database catalog: %w", err)
	}
	return c, nil
}
