// Package sqlite embeds goose migrations for the SQLite storage engine.
package sqlite

import "embed"

//go:embed *.sql
var Migrations embed.FS
