package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/slackpulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestUpsert_InsertAndRename(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.User{ID: "U1", Name: "alice"}))

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM users WHERE id=?`, "U1").Scan(&name))
	assert.Equal(t, "alice", name)

	// last write wins on rename
	require.NoError(t, r.Upsert(ctx, &models.User{ID: "U1", Name: "Alice Q"}))

	require.NoError(t, db.QueryRow(`SELECT name FROM users WHERE id=?`, "U1").Scan(&name))
	assert.Equal(t, "Alice Q", name)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestGetAll_OrderedByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.User{ID: "U2", Name: "bob"}))
	require.NoError(t, r.Upsert(ctx, &models.User{ID: "U1", Name: "alice"}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []models.User{
		{ID: "U1", Name: "alice"},
		{ID: "U2", Name: "bob"},
	}, got)
}

func TestGetAll_Empty(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
