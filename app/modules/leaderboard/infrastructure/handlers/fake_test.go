package leaderboardhandlers

import (
	"context"
	"io"

	leaderboardservice "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	SeasonStandingsFn func(ctx context.Context) ([]leaderboarddomain.SeasonStanding, error)
	WeeklyResultsFn   func(ctx context.Context, week int) ([]leaderboarddomain.WeeklyResult, error)
	StandingsChartFn  func(ctx context.Context) ([]byte, error)
	ExportWorkbookFn  func(ctx context.Context, w io.Writer) error
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) SeasonStandings(ctx context.Context) ([]leaderboarddomain.SeasonStanding, error) {
	f.record("SeasonStandings")
	if f.SeasonStandingsFn != nil {
		return f.SeasonStandingsFn(ctx)
	}
	return []leaderboarddomain.SeasonStanding{}, nil
}

func (f *FakeService) WeeklyResults(ctx context.Context, week int) ([]leaderboarddomain.WeeklyResult, error) {
	f.record("WeeklyResults")
	if f.WeeklyResultsFn != nil {
		return f.WeeklyResultsFn(ctx, week)
	}
	return []leaderboarddomain.WeeklyResult{}, nil
}

func (f *FakeService) StandingsChart(ctx context.Context) ([]byte, error) {
	f.record("StandingsChart")
	if f.StandingsChartFn != nil {
		return f.StandingsChartFn(ctx)
	}
	return nil, nil
}

func (f *FakeService) ExportWorkbook(ctx context.Context, w io.Writer) error {
	f.record("ExportWorkbook")
	if f.ExportWorkbookFn != nil {
		return f.ExportWorkbookFn(ctx, w)
	}
	return nil
}

func (f *FakeService) Invalidate() {
	f.record("Invalidate")
}

var _ leaderboardservice.Service = (*FakeService)(nil)
