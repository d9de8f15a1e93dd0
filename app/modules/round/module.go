package round

import (
	"context"

	"github.com/Black-And-White-Club/frolf-league/app/eventbus"
	roundservice "github.com/Black-And-White-Club/frolf-league/app/modules/round/application"
	roundhandlers "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/handlers"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-league/app/observability"
	"github.com/Black-And-White-Club/frolf-league/config"
	"github.com/go-chi/chi/v5"
)

// Module represents the round module.
type Module struct {
	RoundService roundservice.Service
	Handlers     *roundhandlers.RoundHandlers
}

// NewRoundModule creates a new instance of the Round module. Every ledger
// write is announced on publisher.
func NewRoundModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	ledger rounddb.Ledger,
	publisher eventbus.Publisher,
) (*Module, error) {
	logger := obs.Logger.With("module", "round")
	logger.InfoContext(ctx, "round.NewRoundModule called")

	var metrics observability.OperationMetrics = observability.NoOpMetrics{}
	if obs.Registry != nil {
		metrics = observability.NewOperationMetrics(obs.Registry, "round")
	}

	roundService := roundservice.NewRoundService(ledger, publisher, logger, metrics, obs.Tracer, cfg.Scoring)

	return &Module{
		RoundService: roundService,
		Handlers:     roundhandlers.NewRoundHandlers(roundService, logger),
	}, nil
}

// RegisterRoutes mounts the module's HTTP endpoints.
func (m *Module) RegisterRoutes(r chi.Router) {
	m.Handlers.RegisterRoutes(r)
}
