// Package migrations holds the SQLite schema as numbered NNN_name.sql files.
// Files are applied once each, in version order, and never edited after release.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
