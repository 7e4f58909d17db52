package db

import "embed"

// migrationsFS holds one directory of goose migrations per dialect.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS
