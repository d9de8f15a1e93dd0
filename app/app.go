// Package app assembles the league modules into one runnable process.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Black-And-White-Club/frolf-league/app/eventbus"
	"github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard"
	"github.com/Black-And-White-Club/frolf-league/app/modules/round"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-league/app/observability"
	"github.com/Black-And-White-Club/frolf-league/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// App owns the ledger, the event bus and the modules wired on top of them.
type App struct {
	cfg         *config.Config
	obs         observability.Observability
	ledger      rounddb.Ledger
	closeLedger func() error
	bus         *gochannel.GoChannel
	router      *message.Router

	Round       *round.Module
	Leaderboard *leaderboard.Module
}

// New opens the configured ledger and builds the application around it.
func New(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	ledger, closeLedger, err := rounddb.Open(ctx, cfg, obs.Logger)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}
	a, err := NewWithLedger(ctx, cfg, obs, ledger)
	if err != nil {
		closeLedger()
		return nil, err
	}
	a.closeLedger = closeLedger
	return a, nil
}

// NewWithLedger builds the application around an already opened ledger.
func NewWithLedger(ctx context.Context, cfg *config.Config, obs observability.Observability, ledger rounddb.Ledger) (*App, error) {
	bus := eventbus.New(obs.Logger)
	router, err := eventbus.NewRouter(obs.Logger)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("app.NewWithLedger: %w", err)
	}

	roundModule, err := round.NewRoundModule(ctx, cfg, obs, ledger, bus)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to create round module: %w", err)
	}
	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, cfg, obs, ledger, bus, router)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to create leaderboard module: %w", err)
	}

	return &App{
		cfg:         cfg,
		obs:         obs,
		ledger:      ledger,
		closeLedger: func() error { return nil },
		bus:         bus,
		router:      router,
		Round:       roundModule,
		Leaderboard: leaderboardModule,
	}, nil
}

// Close releases the event bus and the ledger. The router is only closed
// when Run started it.
func (a *App) Close() error {
	var errs []error
	if err := a.closeRouter(); err != nil {
		errs = append(errs, err)
	}
	if err := a.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close event bus: %w", err))
	}
	if err := a.closeLedger(); err != nil {
		errs = append(errs, fmt.Errorf("close ledger: %w", err))
	}
	return errors.Join(errs...)
}

// closeRouter stops the event router. Closing a router that never ran
// blocks until its close timeout.
func (a *App) closeRouter() error {
	if !a.router.IsRunning() {
		return nil
	}
	if err := a.router.Close(); err != nil {
		return fmt.Errorf("close router: %w", err)
	}
	return nil
}

// MetricsHandler serves the process prometheus registry.
func (a *App) MetricsHandler() http.Handler {
	return a.obs.MetricsHandler()
}
