// Package migrations holds the SQL schema files applied by db.RunMigrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
