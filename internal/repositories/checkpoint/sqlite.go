package checkpoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// Get returns the stored checkpoint. If the row does not exist yet, it seeds
// the row with now−DefaultLookback and returns that instant.
func (r *SQLiteRepository) Get(ctx context.Context) (time.Time, error) {
	var ts int64
	err := r.db.QueryRowContext(ctx, `SELECT last_sync_time FROM sync_state WHERE id = 1`).Scan(&ts)
	if err == nil {
		return time.Unix(ts, 0).UTC(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	seed := r.now().Add(-DefaultLookback).UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sync_state (id, last_sync_time) VALUES (1, ?)`, seed.Unix())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to seed checkpoint: %w", err)
	}
	return seed, nil
}

// Set overwrites the checkpoint row.
func (r *SQLiteRepository) Set(ctx context.Context, t time.Time) error {
	query := `INSERT INTO sync_state (id, last_sync_time) VALUES (1, ?)
			ON CONFLICT(id) DO UPDATE SET last_sync_time = excluded.last_sync_time
	`
	if _, err := r.db.ExecContext(ctx, query, t.Unix()); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}
