package checkpoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/dbx"
)

type PostgresRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Get(ctx context.Context) (time.Time, error) {
	var ts int64
	err := r.db.QueryRowContext(ctx, `SELECT last_sync_time FROM sync_state WHERE id = 1`).Scan(&ts)
	if err == nil {
		return time.Unix(ts, 0).UTC(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("db error: %w", err)
	}

	seed := r.now().Add(-DefaultLookback).UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sync_state (id, last_sync_time) VALUES (1, $1)`, seed.Unix())
	if err != nil {
		return time.Time{}, fmt.Errorf("db error: %w", err)
	}
	return seed, nil
}

func (r *PostgresRepository) Set(ctx context.Context, t time.Time) error {
	query := `INSERT INTO sync_state (id, last_sync_time) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET last_sync_time = EXCLUDED.last_sync_time
		 `
	if _, err := r.db.ExecContext(ctx, query, t.Unix()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
