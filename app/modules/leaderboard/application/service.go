package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/domain"
	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-league/app/observability"
	"github.com/Black-And-White-Club/frolf-league/app/observability/attr"
	"github.com/Black-And-White-Club/frolf-league/config"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	cache   *snapshotCache
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer
	table   leaderboarddomain.PointsTable
	floor   decimal.Decimal
	palette ChartPalette
}

// NewLeaderboardService creates a new LeaderboardService reading from ledger.
func NewLeaderboardService(
	ledger rounddb.Ledger,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	scoring config.ScoringConfig,
	cacheTTL time.Duration,
) *LeaderboardService {
	return &LeaderboardService{
		cache:   newSnapshotCache(ledger, cacheTTL),
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		table:   leaderboarddomain.PointsTable(scoring.PointsTable),
		floor:   scoring.FloorPoints,
		palette: DefaultPalette,
	}
}

// operationFunc is the signature of a wrapped service operation.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *LeaderboardService,
	ctx context.Context,
	operationName string,
	op operationFunc[T],
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}

// snapshot returns the current ledger contents, cached or fresh.
func (s *LeaderboardService) snapshot(ctx context.Context) ([]rounddomain.RoundRecord, error) {
	records, hit, err := s.cache.get(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Ledger snapshot",
		attr.Bool("cache_hit", hit),
		attr.Int("records", len(records)),
	)
	return records, nil
}

// Invalidate drops the cached snapshot so the next read hits the ledger.
func (s *LeaderboardService) Invalidate() {
	s.cache.invalidate()
}
