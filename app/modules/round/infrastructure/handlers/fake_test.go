package roundhandlers

import (
	"context"

	roundservice "github.com/Black-And-White-Club/frolf-league/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	"github.com/shopspring/decimal"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	RegisterPlayerFn  func(ctx context.Context, player string, startingHandicap decimal.Decimal, pin string) (rounddomain.RoundRecord, error)
	SubmitRoundFn     func(ctx context.Context, sub rounddomain.Submission) (roundservice.SubmitResult, error)
	PreviewHandicapFn func(ctx context.Context, player string, week int) (decimal.Decimal, error)
	PlayerHistoryFn   func(ctx context.Context, player string) ([]rounddomain.RoundRecord, error)
	ImportScorecardFn func(ctx context.Context, week int, filename string, data []byte) (roundservice.ImportResult, error)
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

func (f *FakeService) RegisterPlayer(ctx context.Context, player string, startingHandicap decimal.Decimal, pin string) (rounddomain.RoundRecord, error) {
	f.record("RegisterPlayer")
	if f.RegisterPlayerFn != nil {
		return f.RegisterPlayerFn(ctx, player, startingHandicap, pin)
	}
	return rounddomain.RoundRecord{}, nil
}

func (f *FakeService) SubmitRound(ctx context.Context, sub rounddomain.Submission) (roundservice.SubmitResult, error) {
	f.record("SubmitRound")
	if f.SubmitRoundFn != nil {
		return f.SubmitRoundFn(ctx, sub)
	}
	return roundservice.SubmitResult{}, nil
}

func (f *FakeService) PreviewHandicap(ctx context.Context, player string, week int) (decimal.Decimal, error) {
	f.record("PreviewHandicap")
	if f.PreviewHandicapFn != nil {
		return f.PreviewHandicapFn(ctx, player, week)
	}
	return decimal.Zero, nil
}

func (f *FakeService) PlayerHistory(ctx context.Context, player string) ([]rounddomain.RoundRecord, error) {
	f.record("PlayerHistory")
	if f.PlayerHistoryFn != nil {
		return f.PlayerHistoryFn(ctx, player)
	}
	return nil, nil
}

func (f *FakeService) ImportScorecard(ctx context.Context, week int, filename string, data []byte) (roundservice.ImportResult, error) {
	f.record("ImportScorecard")
	if f.ImportScorecardFn != nil {
		return f.ImportScorecardFn(ctx, week, filename, data)
	}
	return roundservice.ImportResult{}, nil
}

var _ roundservice.Service = (*FakeService)(nil)
