package leaderboard

import (
	"context"
	"fmt"

	leaderboardservice "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/infrastructure/handlers"
	leaderboardrouter "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/infrastructure/router"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-league/app/observability"
	"github.com/Black-And-White-Club/frolf-league/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	Handlers           *leaderboardhandlers.LeaderboardHandlers
}

// NewLeaderboardModule creates a new instance of the Leaderboard module and
// subscribes it to ledger change events on subscriber.
func NewLeaderboardModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	ledger rounddb.Ledger,
	subscriber message.Subscriber,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger.With("module", "leaderboard")
	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called")

	var metrics observability.OperationMetrics = observability.NoOpMetrics{}
	if obs.Registry != nil {
		metrics = observability.NewOperationMetrics(obs.Registry, "leaderboard")
	}

	leaderboardService := leaderboardservice.NewLeaderboardService(ledger, logger, metrics, obs.Tracer, cfg.Scoring, cfg.Leaderboard.CacheTTL)
	handlers := leaderboardhandlers.NewLeaderboardHandlers(leaderboardService, logger)

	module := &Module{
		LeaderboardService: leaderboardService,
		Handlers:           handlers,
	}

	if router != nil {
		// A nil *prometheus.Registry must not reach the router as a non-nil Registerer.
		var registerer prometheus.Registerer
		if obs.Registry != nil {
			registerer = obs.Registry
		}
		leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, subscriber, registerer)
		if err := leaderboardRouter.Configure(ctx, handlers); err != nil {
			return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
		}
		module.LeaderboardRouter = leaderboardRouter
	}

	return module, nil
}

// RegisterRoutes mounts the module's HTTP endpoints.
func (m *Module) RegisterRoutes(r chi.Router) {
	m.Handlers.RegisterRoutes(r)
}
