// Package repomanager wires the storage engine behind one interface: it opens
// the database handle, runs migrations, and hands out typed repositories. The
// engine is chosen from the DSN scheme, so the rest of the application never
// knows whether it is talking to SQLite or PostgreSQL.
package repomanager

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/slackpulse/internal/repositories/checkpoint"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/counts"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Counts() counts.Repository
	Checkpoint() checkpoint.Repository
	Close() error
}

// New selects the storage engine from the DSN: anything with a postgres
// scheme goes to pgx, everything else is treated as a SQLite path/URI.
func New(dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresRepositoryManager(dsn)
	}
	return NewSQLiteRepositoryManager(dsn)
}
