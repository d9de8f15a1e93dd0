package roundservice

import (
	"context"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/Black-And-White-Club/frolf-league/app/observability/attr"
	"github.com/shopspring/decimal"
)

// RegisterPlayer stores the week-0 baseline row carrying the starting
// handicap. Registering again replaces the baseline.
func (s *RoundService) RegisterPlayer(ctx context.Context, player string, startingHandicap decimal.Decimal, pin string) (rounddomain.RoundRecord, error) {
	return withTelemetry(s, ctx, "RegisterPlayer", player, func(ctx context.Context) (rounddomain.RoundRecord, error) {
		if err := s.validator.ValidateBaseline(player, startingHandicap); err != nil {
			return rounddomain.RoundRecord{}, err
		}

		rec := rounddomain.NewBaseline(player, startingHandicap, pin)
		rec.SubmittedAt = s.now().UTC()
		if err := s.ledger.Upsert(ctx, rec); err != nil {
			return rounddomain.RoundRecord{}, err
		}

		s.logger.InfoContext(ctx, "Player registered",
			attr.Player(rec.Player),
			attr.Decimal("handicap", rec.Handicap),
		)
		s.publishRecorded(ctx, rec, false)
		return rec, nil
	})
}
