// Package postgres embeds goose migrations for the PostgreSQL storage engine.
package postgres

import "embed"

//go:embed *.sql
var Migrations embed.FS
