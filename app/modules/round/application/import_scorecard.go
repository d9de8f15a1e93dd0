package roundservice

import (
	"context"
	"errors"
	"fmt"

	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-league/app/observability/attr"
)

// ImportScorecard parses a hole-by-hole card and submits one round per row.
// Gross is the card total and feat counts are derived from the par row.
// A row that fails validation is reported in Rejected; a ledger failure
// aborts the import.
func (s *RoundService) ImportScorecard(ctx context.Context, week int, filename string, data []byte) (ImportResult, error) {
	return withTelemetry(s, ctx, "ImportScorecard", filename, func(ctx context.Context) (ImportResult, error) {
		parser, err := s.parsers.GetParser(filename)
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalidScorecard, err)
		}
		card, err := parser.Parse(data)
		if err != nil {
			return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalidScorecard, err)
		}

		result := ImportResult{Card: card}
		for _, sub := range card.Submissions(week) {
			res, err := s.SubmitRound(ctx, sub)
			switch {
			case err == nil:
				result.Recorded = append(result.Recorded, res)
			case errors.Is(err, rounddb.ErrLedgerUnavailable), errors.Is(err, rounddb.ErrCorruptRow), ctx.Err() != nil:
				return result, err
			default:
				result.Rejected = append(result.Rejected, RejectedRow{Player: sub.Player, Reason: err.Error()})
			}
		}

		s.logger.InfoContext(ctx, "Scorecard imported",
			attr.Week(week),
			attr.String("file", filename),
			attr.Int("recorded", len(result.Recorded)),
			attr.Int("rejected", len(result.Rejected)),
		)
		return result, nil
	})
}
