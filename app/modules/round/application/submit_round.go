package roundservice

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/Black-And-White-Club/frolf-league/app/observability/attr"
)

// SubmitRound validates sub, resolves the handicap and net score, and upserts
// the record. Resubmitting the same (week, player) replaces the earlier round.
func (s *RoundService) SubmitRound(ctx context.Context, sub rounddomain.Submission) (SubmitResult, error) {
	return withTelemetry(s, ctx, "SubmitRound", sub.Player, func(ctx context.Context) (SubmitResult, error) {
		records, err := s.ledger.ReadAll(ctx)
		if err != nil {
			return SubmitResult{}, err
		}

		rec, err := s.validator.Resolve(sub, records, s.handicap)
		if err != nil {
			return SubmitResult{}, err
		}
		rec.SubmittedAt = s.now().UTC()

		result := SubmitResult{Record: rec}
		if prev, ok := rounddomain.Find(records, rec.Key()); ok {
			result.Previous = &prev
		}

		if err := s.ledger.Upsert(ctx, rec); err != nil {
			return SubmitResult{}, err
		}

		if result.Replaced() {
			s.logger.WarnContext(ctx, "Round overwrote an earlier submission",
				attr.Player(rec.Player),
				attr.Week(rec.Week),
				attr.Decimal("previous_net", result.Previous.Net),
				attr.Decimal("net", rec.Net),
			)
		}
		s.publishRecorded(ctx, rec, result.Replaced())
		return result, nil
	})
}
