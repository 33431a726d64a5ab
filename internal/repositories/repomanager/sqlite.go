package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/slackpulse/internal/migrations/sqlite"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/checkpoint"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/counts"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

type SQLiteRepositoryManager struct {
	db         *sql.DB
	users      users.Repository
	counts     counts.Repository
	checkpoint checkpoint.Repository
}

func (m *SQLiteRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *SQLiteRepositoryManager) Counts() counts.Repository {
	return m.counts
}

func (m *SQLiteRepositoryManager) Checkpoint() checkpoint.Repository {
	return m.checkpoint
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(sqlite.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, m.db, ".")
}

func NewSQLiteRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent batch commits.
	db.SetMaxOpenConns(1)

	return &SQLiteRepositoryManager{
		db:         db,
		users:      users.NewSQLiteRepository(db),
		counts:     counts.NewSQLiteRepository(db),
		checkpoint: checkpoint.NewSQLiteRepository(db),
	}, nil
}
