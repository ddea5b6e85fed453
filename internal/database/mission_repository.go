package database

import (
	"context"
	"fmt"

	"github.com/example/skillspace/pkg/models"
)

// MissionRepository handles database operations for daily mission definitions
type MissionRepository struct{}

// NewMissionRepository creates a new repository instance
func NewMissionRepository() *MissionRepository {
	return &MissionRepository{}
}

// List returns all daily mission definitions in board order
func (r *MissionRepository) List(ctx context.Context) ([]models.DailyMission, error) {
	var missions []models.DailyMission
	err := DB.SelectContext(ctx, &missions,
		"SELECT id, title, description, reward_xp, icon FROM daily_missions ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list daily missions: %w", err)
	}
	return missions, nil
}

// Upsert creates or updates a daily mission definition.
// It reports whether a new row was created.
func (r *MissionRepository) Upsert(ctx context.Context, m models.DailyMission, position int) (bool, error) {
	var existing int
	err := DB.GetContext(ctx, &existing, DB.Rebind("SELECT COUNT(*) FROM daily_missions WHERE id = ?"), m.ID)
	if err != nil {
		return false, fmt.Errorf("failed to look up daily mission %s: %w", m.ID, err)
	}

	query := DB.Rebind(`
		INSERT INTO daily_missions (id, title, description, reward_xp, icon, position)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			reward_xp = excluded.reward_xp,
			icon = excluded.icon,
			position = excluded.position,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := DB.ExecContext(ctx, query, m.ID, m.Title, m.Description, m.RewardXP, m.Icon, position); err != nil {
		return false, fmt.Errorf("failed to save daily mission %s: %w", m.ID, err)
	}
	return existing == 0, nil
}

// Delete removes a daily mission definition
func (r *MissionRepository) Delete(ctx context.Context, id string) error {
	_, err := DB.ExecContext(ctx, DB.Rebind("DELETE FROM daily_missions WHERE id = ?"), id)
	return err
}
