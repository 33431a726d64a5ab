package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/slackpulse/internal/dbx"
	"github.com/dmitrijs2005/slackpulse/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts a user by id. On conflict the display name is updated.
func (r *SQLiteRepository) Upsert(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, name) VALUES (?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetAll lists all users ordered by id.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, name FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var item models.User
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
