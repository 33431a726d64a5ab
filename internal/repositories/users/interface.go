package users

import (
	"context"

	"github.com/dmitrijs2005/slackpulse/internal/models"
)

// Repository describes persistence operations for the tracked-user directory.
type Repository interface {
	// Upsert inserts a user or updates its display name (last write wins).
	Upsert(ctx context.Context, user *models.User) error

	// GetAll returns every known user, ordered by id.
	GetAll(ctx context.Context) ([]models.User, error)
}
