package roundmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the league_rounds schema migrations.
var Migrations = migrate.NewMigrations()
