// Package users provides the persistence layer for the tracked-user directory.
//
// # Overview
//
// The package defines a Repository interface for upserting and listing users
// (see internal/models). Two implementations exist: SQLiteRepository and
// PostgresRepository, both backed by a dbx.DBTX (either *sql.DB or *sql.Tx).
//
// # Data Model
//
// A user row holds the external platform identifier and a best-effort display
// name. Rows are never deleted; reconciling the directory against the
// configured ID list only adds or renames.
//
// # Concurrency
//
// Implementations are safe for concurrent use when backed by a properly
// configured *sql.DB. When using *sql.Tx (DBTX), follow normal transaction
// scoping rules.
package users
