// Package counts provides the persistence layer for daily message counters.
//
// # Overview
//
// The package defines a Repository interface with two operations: a
// transactional batch upsert used by the sync controller after a successful
// walk, and an inclusive date-range scan used by the aggregation engine.
// SQLite and PostgreSQL implementations share the same contract.
//
// # Data Model
//
// One row per (user_id, date) with a non-negative count. Dates are stored as
// ISO 8601 text, which makes BETWEEN range scans order correctly without any
// date functions.
//
// # Concurrency
//
// UpsertBatch runs inside its own transaction (dbx.WithTx), so a failed batch
// never leaves a user's pass half-written. Readers only ever observe fully
// committed batches.
package counts
