package leaderboardrouter

import (
	"context"
	"log/slog"

	roundevents "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain/events"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
)

// RoundRecordedHandlerName is the router handler consuming round.recorded.v1.
const RoundRecordedHandlerName = "leaderboard." + roundevents.RoundRecordedV1

// Handlers is the event side of the leaderboard handlers.
type Handlers interface {
	HandleRoundRecorded(msg *message.Message) error
}

// LeaderboardRouter binds leaderboard event handlers to the message router.
type LeaderboardRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewLeaderboardRouter creates a new instance of the router. A nil registry
// disables the watermill handler metrics.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	prometheusRegistry prometheus.Registerer,
) *LeaderboardRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "league", "leaderboard")
		metricsBuilder = &builder
	}

	return &LeaderboardRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		metricsBuilder: metricsBuilder,
	}
}

// Configure sets up the metrics middleware and registers the event handlers.
func (r *LeaderboardRouter) Configure(ctx context.Context, handlers Handlers) error {
	if r.metricsBuilder != nil {
		r.logger.InfoContext(ctx, "Adding Prometheus router metrics middleware for Leaderboard")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}
	return r.RegisterHandlers(ctx, handlers)
}

// RegisterHandlers binds event topics to their handlers.
func (r *LeaderboardRouter) RegisterHandlers(ctx context.Context, handlers Handlers) error {
	r.logger.InfoContext(ctx, "Registering Leaderboard Event Handlers")

	r.Router.AddConsumerHandler(
		RoundRecordedHandlerName,
		roundevents.RoundRecordedV1,
		r.subscriber,
		handlers.HandleRoundRecorded,
	)
	return nil
}

// Close stops the router and cleans up resources.
func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}
