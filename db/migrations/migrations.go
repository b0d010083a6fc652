// Package migrations embeds the SQL schema applied by goose.
package migrations

import "embed"

// FS holds the goose migration files under sql/.
//
//go:embed sql/*.sql
var FS embed.FS

// Dir is the directory inside FS that holds the migrations.
const Dir = "sql"
