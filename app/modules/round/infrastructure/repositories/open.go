package rounddb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/frolf-league/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// NewDB opens a bun handle for the configured postgres driver and pings it.
func NewDB(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	var sqldb *sql.DB
	switch cfg.Driver {
	case "pgx":
		var err error
		sqldb, err = sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("rounddb.NewDB: %w: %w", ErrLedgerUnavailable, err)
		}
	default:
		sqldb = sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("rounddb.NewDB ping: %w: %w", ErrLedgerUnavailable, err)
	}
	return db, nil
}

// Open builds the ledger selected by cfg.Ledger.Backend. The returned close
// function releases the backing connection, if any.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Ledger, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Ledger.Backend {
	case config.LedgerBackendPostgres:
		db, err := NewDB(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		logger.InfoContext(ctx, "ledger opened", slog.String("backend", cfg.Ledger.Backend), slog.String("driver", cfg.Postgres.Driver))
		return NewRepository(db), db.Close, nil
	case config.LedgerBackendXLSX:
		logger.InfoContext(ctx, "ledger opened", slog.String("backend", cfg.Ledger.Backend), slog.String("path", cfg.Ledger.XLSXPath))
		return NewXLSXLedger(cfg.Ledger.XLSXPath, logger), noop, nil
	case config.LedgerBackendMemory:
		logger.WarnContext(ctx, "using in-memory ledger, records are lost on exit")
		return NewMemoryLedger(), noop, nil
	default:
		return nil, nil, fmt.Errorf("rounddb.Open: unknown backend %q", cfg.Ledger.Backend)
	}
}
