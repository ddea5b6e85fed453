package database

import (
	"context"
	"fmt"

	"github.com/example/skillspace/pkg/models"
)

// ChallengeRepository handles database operations for logic core challenges
type ChallengeRepository struct{}

// NewChallengeRepository creates a new repository instance
func NewChallengeRepository() *ChallengeRepository {
	return &ChallengeRepository{}
}

// List returns all challenges in drill order
func (r *ChallengeRepository) List(ctx context.Context) ([]models.CodeChallenge, error) {
	var challenges []models.CodeChallenge
	err := DB.SelectContext(ctx, &challenges,
		"SELECT id, title, description, difficulty, starter_code FROM challenges ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return challenges, nil
}

// Upsert creates or updates a challenge and reports whether it was new
func (r *ChallengeRepository) Upsert(ctx context.Context, c models.CodeChallenge, position int) (bool, error) {
	var existing int
	err := DB.GetContext(ctx, &existing, DB.Rebind("SELECT COUNT(*) FROM challenges WHERE id = ?"), c.ID)
	if err != nil {
		return false, fmt.Errorf("failed to look up challenge %s: %w", c.ID, err)
	}

	query := DB.Rebind(`
		INSERT INTO challenges (id, title, description, difficulty, starter_code, position)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			difficulty = excluded.difficulty,
			starter_code = excluded.starter_code,
			position = excluded.position,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := DB.ExecContext(ctx, query, c.ID, c.Title, c.Description, c.Difficulty, c.StarterCode, position); err != nil {
		return false, fmt.Errorf("failed to save challenge %s: %w", c.ID, err)
	}
	return existing == 0, nil
}
