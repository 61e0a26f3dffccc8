// Package db embeds the SQL migrations for the accessd schema.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
