package roundservice

import (
	"context"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/shopspring/decimal"
)

// PreviewHandicap computes the handicap player would carry into week from
// the rounds already in the ledger.
func (s *RoundService) PreviewHandicap(ctx context.Context, player string, week int) (decimal.Decimal, error) {
	return withTelemetry(s, ctx, "PreviewHandicap", player, func(ctx context.Context) (decimal.Decimal, error) {
		if week < 1 {
			return decimal.Zero, &rounddomain.ValidationError{
				Field:  "week",
				Reason: fmt.Sprintf("week %d must be at least 1", week),
				Err:    rounddomain.ErrInputOutOfRange,
			}
		}
		history, err := s.history(ctx, player)
		if err != nil {
			return decimal.Zero, err
		}
		return rounddomain.ComputeHandicap(history, week, s.handicap), nil
	})
}

// PlayerHistory returns the player's baseline and rounds ordered by week.
func (s *RoundService) PlayerHistory(ctx context.Context, player string) ([]rounddomain.RoundRecord, error) {
	return withTelemetry(s, ctx, "PlayerHistory", player, func(ctx context.Context) ([]rounddomain.RoundRecord, error) {
		return s.history(ctx, player)
	})
}

func (s *RoundService) history(ctx context.Context, player string) ([]rounddomain.RoundRecord, error) {
	records, err := s.ledger.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	history := rounddomain.PlayerHistory(records, player)
	if len(history) == 0 {
		return nil, &rounddomain.ValidationError{
			Field:  "player",
			Reason: "no records for " + rounddomain.NormalizePlayer(player),
			Err:    rounddomain.ErrUnknownPlayer,
		}
	}
	return history, nil
}
