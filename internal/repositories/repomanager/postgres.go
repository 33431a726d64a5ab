package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/slackpulse/internal/migrations/postgres"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/checkpoint"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/counts"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db         *sql.DB
	users      users.Repository
	counts     counts.Repository
	checkpoint checkpoint.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Counts() counts.Repository {
	return m.counts
}

func (m *PostgresRepositoryManager) Checkpoint() checkpoint.Repository {
	return m.checkpoint
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(postgres.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, m.db, ".")
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &PostgresRepositoryManager{
		db:         db,
		users:      users.NewPostgresRepository(db),
		counts:     counts.NewPostgresRepository(db),
		checkpoint: checkpoint.NewPostgresRepository(db),
	}, nil
}
