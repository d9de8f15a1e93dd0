package roundservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-league/app/eventbus"
	"github.com/Black-And-White-Club/frolf-league/app/modules/round/application/parsers"
	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain/events"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-league/app/observability"
	"github.com/Black-And-White-Club/frolf-league/app/observability/attr"
	"github.com/Black-And-White-Club/frolf-league/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RoundService implements the Service interface.
type RoundService struct {
	ledger    rounddb.Ledger
	publisher eventbus.Publisher
	logger    *slog.Logger
	metrics   observability.OperationMetrics
	tracer    trace.Tracer
	validator rounddomain.Validator
	handicap  rounddomain.HandicapConfig
	parsers   parsers.ParserFactory
	now       func() time.Time
}

// NewRoundService creates a new RoundService.
func NewRoundService(
	ledger rounddb.Ledger,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	scoring config.ScoringConfig,
) *RoundService {
	validator, handicap := ScoringRules(scoring)
	if scoring.KeepFeatsOnDNF {
		logger.Info("DNF rounds keep their feat counts", attr.Bool("keep_feats_on_dnf", true))
	}
	return &RoundService{
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		validator: validator,
		handicap:  handicap,
		parsers:   parsers.NewFactory(),
		now:       time.Now,
	}
}

// ScoringRules derives the validator and handicap settings from config.
func ScoringRules(cfg config.ScoringConfig) (rounddomain.Validator, rounddomain.HandicapConfig) {
	policy := rounddomain.HandicapPolicy(cfg.HandicapPolicy)
	return rounddomain.Validator{
			GrossMin:       cfg.GrossMin,
			GrossMax:       cfg.GrossMax,
			MaxWeek:        cfg.MaxWeek,
			Policy:         policy,
			KeepFeatsOnDNF: cfg.KeepFeatsOnDNF,
		}, rounddomain.HandicapConfig{
			BaselinePar:   cfg.BaselinePar,
			WindowSize:    cfg.WindowSize,
			ExcludedWeeks: cfg.ExcludedWeekSet(),
			Policy:        policy,
		}
}

// operationFunc is the signature of a wrapped service operation.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *RoundService,
	ctx context.Context,
	operationName string,
	player string,
	op operationFunc[T],
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("player", player),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.Player(player),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.Player(player),
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
			attr.Player(player),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.logger.InfoContext(ctx, operationName+" completed successfully",
		attr.String("operation", operationName),
		attr.Player(player),
		attr.ExtractCorrelationID(ctx),
	)
	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}

// publishRecorded announces a ledger write. The write already succeeded, so
// a publish failure is logged and not returned.
func (s *RoundService) publishRecorded(ctx context.Context, rec rounddomain.RoundRecord, replaced bool) {
	if s.publisher == nil {
		return
	}
	msg, err := eventbus.NewMessage(ctx, roundevents.RoundRecordedPayloadV1{
		Week:       rec.Week,
		Player:     rec.Player,
		DNF:        rec.DNF,
		Net:        rec.Net.String(),
		Handicap:   rec.Handicap.String(),
		Replaced:   replaced,
		RecordedAt: rec.SubmittedAt,
	})
	if err == nil {
		err = s.publisher.Publish(roundevents.RoundRecordedV1, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish round recorded event",
			attr.Player(rec.Player),
			attr.Week(rec.Week),
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
	}
}
