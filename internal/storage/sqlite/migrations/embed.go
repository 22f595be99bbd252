package migrations

import "embed"

// FS contains embedded SQLite migrations for chronicle storage.
//
//go:embed *.sql
var FS embed.FS
