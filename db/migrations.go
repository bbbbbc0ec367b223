// Package db embeds the SQL migration files so schema creation at startup
// does not depend on files being present next to the binary.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
