package leaderboardservice

import (
	"context"
	"io"

	leaderboarddomain "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/domain"
)

// Service defines the read side of the league: standings, weekly results and
// their rendered forms. Every view is recomputed from a ledger snapshot.
type Service interface {
	// SeasonStandings returns every player's season line, best first.
	SeasonStandings(ctx context.Context) ([]leaderboarddomain.SeasonStanding, error)

	// WeeklyResults returns the ranked results of one week.
	WeeklyResults(ctx context.Context, week int) ([]leaderboarddomain.WeeklyResult, error)

	// StandingsChart renders total points per player as a PNG bar chart.
	StandingsChart(ctx context.Context) ([]byte, error)

	// ExportWorkbook writes a workbook with a Standings sheet and one sheet per week.
	ExportWorkbook(ctx context.Context, w io.Writer) error

	// Invalidate drops the cached ledger snapshot.
	Invalidate()
}
