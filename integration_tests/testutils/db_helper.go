package testutils

import (
	"context"
	"fmt"
	"log"
	"strings"

	roundmigrations "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// RunLedgerMigrations initializes the migration tables and applies the
// league_rounds migrations.
func RunLedgerMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, roundmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run round migrations: %w", err)
	}
	if group.IsZero() {
		log.Printf("No round migrations to run")
	} else {
		log.Printf("Ran round migrations group %s", group)
	}
	return nil
}

// TruncateTables truncates the specified tables
func TruncateTables(ctx context.Context, db *bun.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}

	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = fmt.Sprintf(`"%s"`, table)
	}
	query := "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " CASCADE"

	log.Printf("Truncating tables: %s", strings.Join(tables, ", "))
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to truncate tables %v: %w", tables, err)
	}
	return nil
}
