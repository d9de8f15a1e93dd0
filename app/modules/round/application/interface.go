package roundservice

import (
	"context"

	"github.com/Black-And-White-Club/frolf-league/app/modules/round/application/parsers"
	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/shopspring/decimal"
)

// Service defines the round submission operations.
type Service interface {
	// RegisterPlayer writes the player's week-0 baseline row.
	RegisterPlayer(ctx context.Context, player string, startingHandicap decimal.Decimal, pin string) (rounddomain.RoundRecord, error)

	// SubmitRound validates, scores and stores one weekly round.
	SubmitRound(ctx context.Context, sub rounddomain.Submission) (SubmitResult, error)

	// PreviewHandicap returns the handicap the player would carry into week.
	PreviewHandicap(ctx context.Context, player string, week int) (decimal.Decimal, error)

	// PlayerHistory returns every record of player ordered by week.
	PlayerHistory(ctx context.Context, player string) ([]rounddomain.RoundRecord, error)

	// ImportScorecard submits every row of a hole-by-hole scorecard for week.
	ImportScorecard(ctx context.Context, week int, filename string, data []byte) (ImportResult, error)
}

// SubmitResult is the stored record plus the one it replaced, if any.
type SubmitResult struct {
	Record   rounddomain.RoundRecord  `json:"record"`
	Previous *rounddomain.RoundRecord `json:"previous,omitempty"`
}

// Replaced reports whether the submission overwrote an earlier record.
func (r SubmitResult) Replaced() bool {
	return r.Previous != nil
}

// ImportResult summarizes a scorecard import. Rows that fail validation are
// reported and skipped; the remaining rows are still stored.
type ImportResult struct {
	Card     *parsers.ParsedScorecard `json:"-"`
	Recorded []SubmitResult           `json:"recorded"`
	Rejected []RejectedRow            `json:"rejected"`
}

// RejectedRow is a scorecard row that could not be submitted.
type RejectedRow struct {
	Player string `json:"player"`
	Reason string `json:"reason"`
}
