// Package migrations embeds the goose migrations for the Postgres-backed
// auth and document stores.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
