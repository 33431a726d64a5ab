package counts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/slackpulse/internal/dbx"
)

// SQLiteRepository implements Repository over a *sql.DB. Unlike the read-only
// repositories it needs the full DB handle so UpsertBatch can open its own
// transaction.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DB.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// UpsertBatch replaces the counts for every (userID, date) key in byDate as
// one all-or-nothing transaction.
func (r *SQLiteRepository) UpsertBatch(ctx context.Context, userID string, byDate map[string]int64) error {
	if len(byDate) == 0 {
		return nil
	}

	query := `INSERT INTO daily_counts (user_id, date, count) VALUES (?, ?, ?)
			ON CONFLICT(user_id, date) DO UPDATE SET count = excluded.count
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
		return fmt.Errorf("failed to upsert counts for user %s: %w", userID, err)
	}
	return nil
}

// QueryRange scans the inclusive [startDate, endDate] window ordered by date
// ascending and groups rows by user.
func (r *SQLiteRepository) QueryRange(ctx context.Context, startDate, endDate string) (map[string]map[string]int64, error) {
	query := `SELECT user_id, date, count FROM daily_counts
			WHERE date BETWEEN ? AND ?
			ORDER BY date
	`
	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to select counts: %w", err)
	}
	defer rows.Close()

	result := make(map[string]map[string]int64)
	for rows.Next() {
		var userID, date string
		var count int64
		if err := rows.Scan(&userID, &date, &count); err != nil {
			return nil, err
		}
		if result[userID] == nil {
			result[userID] = make(map[string]int64)
		}
		result[userID][date] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
