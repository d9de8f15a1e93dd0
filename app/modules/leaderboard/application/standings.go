package leaderboardservice

import (
	"context"
	"fmt"

	leaderboarddomain "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/domain"
	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
)

// SeasonStandings aggregates the whole ledger into ordered standings.
func (s *LeaderboardService) SeasonStandings(ctx context.Context) ([]leaderboarddomain.SeasonStanding, error) {
	return withTelemetry(s, ctx, "SeasonStandings", func(ctx context.Context) ([]leaderboarddomain.SeasonStanding, error) {
		records, err := s.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return leaderboarddomain.BuildStandings(records, s.table, s.floor), nil
	})
}

// WeeklyResults ranks the rounds of week. A week nobody has played yet is
// an empty result, not an error.
func (s *LeaderboardService) WeeklyResults(ctx context.Context, week int) ([]leaderboarddomain.WeeklyResult, error) {
	return withTelemetry(s, ctx, "WeeklyResults", func(ctx context.Context) ([]leaderboarddomain.WeeklyResult, error) {
		if week < 1 {
			return nil, &rounddomain.ValidationError{
				Field:  "week",
				Reason: fmt.Sprintf("week %d must be at least 1", week),
				Err:    rounddomain.ErrInputOutOfRange,
			}
		}
		records, err := s.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		byWeek, _ := leaderboarddomain.GroupByWeek(records)
		return leaderboarddomain.RankWeek(byWeek[week], s.table, s.floor), nil
	})
}
