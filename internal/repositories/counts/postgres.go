package counts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/slackpulse/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UpsertBatch(ctx context.Context, userID string, byDate map[string]int64) error {
	if len(byDate) == 0 {
		return nil
	}

	query := `INSERT INTO daily_counts (user_id, date, count) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, date) DO UPDATE SET count = EXCLUDED.count
		 `

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for date, count := range byDate {
			if _, err := tx.ExecContext(ctx, query, userID, date, count); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) QueryRange(ctx context.Context, startDate, endDate string) (map[string]map[string]int64, error) {
	query := `SELECT user_id, date, count FROM daily_counts
		 WHERE date BETWEEN $1 AND $2
		 ORDER BY date
		 `

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[string]map[string]int64)
	for rows.Next() {
		var userID, date string
		var count int64
		if err := rows.Scan(&userID, &date, &count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if result[userID] == nil {
			result[userID] = make(map[string]int64)
		}
		result[userID][date] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
