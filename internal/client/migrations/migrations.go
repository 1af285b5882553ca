// Package migrations embeds the SQL migrations for the client-side
// folder index database, applied with goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
