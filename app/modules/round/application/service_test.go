package roundservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/frolf-league/app/eventbus"
	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	roundevents "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain/events"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-league/app/observability"
	"github.com/Black-And-White-Club/frolf-league/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

var fixedNow = time.Date(2026, 6, 2, 19, 0, 0, 0, time.UTC)

func testScoring() config.ScoringConfig {
	return config.Default().Scoring
}

func newTestService(ledger rounddb.Ledger, pub eventbus.Publisher, scoring config.ScoringConfig) *RoundService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	s := NewRoundService(ledger, pub, logger, observability.NoOpMetrics{}, tracer, scoring)
	s.now = func() time.Time { return fixedNow }
	return s
}

func seasonLedger() *FakeLedger {
	return NewFakeLedger(
		rounddomain.NewBaseline("alice", decimal.NewFromInt(12), "1111"),
		rounddomain.RoundRecord{Week: 1, Player: "alice", Gross: 80},
		rounddomain.RoundRecord{Week: 2, Player: "alice", Gross: 82},
		rounddomain.RoundRecord{Week: 3, Player: "alice", Gross: 85},
		rounddomain.RoundRecord{Week: 4, Player: "alice", Gross: 90},
		rounddomain.NewBaseline("bob", decimal.NewFromInt(10), "2222"),
	)
}

func TestRoundService_SubmitRound(t *testing.T) {
	ctx := context.Background()
	override := decimal.NewFromInt(10)

	tests := []struct {
		name      string
		sub       rounddomain.Submission
		setupFake func(*FakeLedger)
		wantErr   error
		verify    func(t *testing.T, res SubmitResult, fake *FakeLedger, pub *FakePublisher)
	}{
		{
			name: "computes the rolling handicap and net",
			sub:  rounddomain.Submission{Week: 5, Player: "alice", Gross: 80, Birdies: 2},
			verify: func(t *testing.T, res SubmitResult, fake *FakeLedger, pub *FakePublisher) {
				assert.Equal(t, "46.3", res.Record.Handicap.String())
				assert.Equal(t, "33.7", res.Record.Net.String())
				assert.Equal(t, 2, res.Record.Birdies)
				assert.Equal(t, fixedNow, res.Record.SubmittedAt)
				assert.False(t, res.Replaced())
				assert.Equal(t, []string{"ReadAll", "Upsert"}, fake.Trace())
				assert.Equal(t, 1, pub.Count(roundevents.RoundRecordedV1))
			},
		},
		{
			name: "baseline fallback with handicap override gives basic net",
			sub:  rounddomain.Submission{Week: 1, Player: "bob", Gross: 88, Handicap: &override},
			verify: func(t *testing.T, res SubmitResult, fake *FakeLedger, pub *FakePublisher) {
				assert.True(t, res.Record.Net.Equal(decimal.NewFromInt(78)))
			},
		},
		{
			name: "resubmission reports the replaced record",
			sub:  rounddomain.Submission{Week: 4, Player: "alice", Gross: 84},
			verify: func(t *testing.T, res SubmitResult, fake *FakeLedger, pub *FakePublisher) {
				require.True(t, res.Replaced())
				assert.Equal(t, 90, res.Previous.Gross)
				assert.Equal(t, 84, res.Record.Gross)

				msg := pub.Published[roundevents.RoundRecordedV1][0]
				payload, err := eventbus.Decode[roundevents.RoundRecordedPayloadV1](msg)
				require.NoError(t, err)
				assert.True(t, payload.Replaced)
				assert.Equal(t, 4, payload.Week)
			},
		},
		{
			name: "dnf stores zero gross and net",
			sub:  rounddomain.Submission{Week: 5, Player: "bob", DNF: true, Pars: 3},
			verify: func(t *testing.T, res SubmitResult, fake *FakeLedger, pub *FakePublisher) {
				assert.True(t, res.Record.DNF)
				assert.Zero(t, res.Record.Gross)
				assert.True(t, res.Record.Net.IsZero())
				assert.Zero(t, res.Record.Pars)
			},
		},
		{
			name:    "out of range gross is rejected before writing",
			sub:     rounddomain.Submission{Week: 5, Player: "alice", Gross: 500},
			wantErr: rounddomain.ErrInputOutOfRange,
			verify: func(t *testing.T, res SubmitResult, fake *FakeLedger, pub *FakePublisher) {
				assert.Equal(t, []string{"ReadAll"}, fake.Trace())
				assert.Zero(t, pub.Count(roundevents.RoundRecordedV1))
			},
		},
		{
			name:    "unknown player",
			sub:     rounddomain.Submission{Week: 1, Player: "zed", Gross: 80},
			wantErr: rounddomain.ErrUnknownPlayer,
		},
		{
			name: "ledger read failure propagates",
			sub:  rounddomain.Submission{Week: 5, Player: "alice", Gross: 80},
			setupFake: func(f *FakeLedger) {
				f.ReadAllFunc = func(ctx context.Context) ([]rounddomain.RoundRecord, error) {
					return nil, rounddb.ErrLedgerUnavailable
				}
			},
			wantErr: rounddb.ErrLedgerUnavailable,
		},
		{
			name: "ledger write failure propagates",
			sub:  rounddomain.Submission{Week: 5, Player: "alice", Gross: 80},
			setupFake: func(f *FakeLedger) {
				f.UpsertFunc = func(ctx context.Context, record rounddomain.RoundRecord) error {
					return rounddb.ErrLedgerUnavailable
				}
			},
			wantErr: rounddb.ErrLedgerUnavailable,
			verify: func(t *testing.T, res SubmitResult, fake *FakeLedger, pub *FakePublisher) {
				assert.Zero(t, pub.Count(roundevents.RoundRecordedV1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := seasonLedger()
			if tt.setupFake != nil {
				tt.setupFake(fake)
			}
			pub := NewFakePublisher()
			svc := newTestService(fake, pub, testScoring())

			res, err := svc.SubmitRound(ctx, tt.sub)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.verify != nil {
				tt.verify(t, res, fake, pub)
			}
		})
	}
}

func TestRoundService_SubmitRound_PublishFailureIsNotFatal(t *testing.T) {
	pub := NewFakePublisher()
	pub.PublishFunc = func(topic string, messages ...*message.Message) error {
		return errors.New("bus closed")
	}
	svc := newTestService(seasonLedger(), pub, testScoring())

	_, err := svc.SubmitRound(context.Background(), rounddomain.Submission{Week: 5, Player: "bob", Gross: 70})
	require.NoError(t, err)
}

func TestRoundService_RecoversFromPanic(t *testing.T) {
	fake := seasonLedger()
	fake.UpsertFunc = func(ctx context.Context, record rounddomain.RoundRecord) error {
		panic("disk on fire")
	}
	svc := newTestService(fake, nil, testScoring())

	_, err := svc.SubmitRound(context.Background(), rounddomain.Submission{Week: 5, Player: "bob", Gross: 70})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in SubmitRound")
}

func TestRoundService_RegisterPlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("writes a baseline row", func(t *testing.T) {
		fake := NewFakeLedger()
		pub := NewFakePublisher()
		svc := newTestService(fake, pub, testScoring())

		rec, err := svc.RegisterPlayer(ctx, "  carol ", decimal.RequireFromString("8.5"), "9999")
		require.NoError(t, err)
		assert.Equal(t, "carol", rec.Player)
		assert.True(t, rec.IsBaseline())

		all, err := fake.ReadAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "9999", all[0].PIN)
		assert.Equal(t, 1, pub.Count(roundevents.RoundRecordedV1))
	})

	t.Run("negative handicap rejected under clampNonNegative", func(t *testing.T) {
		scoring := testScoring()
		scoring.HandicapPolicy = config.HandicapPolicyClampNonNegative
		fake := NewFakeLedger()
		svc := newTestService(fake, nil, scoring)

		_, err := svc.RegisterPlayer(ctx, "dana", decimal.NewFromInt(-2), "")
		require.ErrorIs(t, err, rounddomain.ErrInputOutOfRange)
		assert.Empty(t, fake.Trace())
	})

	t.Run("blank player rejected", func(t *testing.T) {
		svc := newTestService(NewFakeLedger(), nil, testScoring())
		_, err := svc.RegisterPlayer(ctx, "  ", decimal.Zero, "")
		require.ErrorIs(t, err, rounddomain.ErrInputOutOfRange)
	})
}

func TestRoundService_PreviewHandicap(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(seasonLedger(), nil, testScoring())

	got, err := svc.PreviewHandicap(ctx, "alice", 5)
	require.NoError(t, err)
	assert.Equal(t, "46.3", got.String())

	got, err = svc.PreviewHandicap(ctx, "bob", 3)
	require.NoError(t, err)
	assert.Equal(t, "10.0", got.StringFixed(1))

	_, err = svc.PreviewHandicap(ctx, "zed", 3)
	require.ErrorIs(t, err, rounddomain.ErrUnknownPlayer)

	_, err = svc.PreviewHandicap(ctx, "alice", 0)
	require.ErrorIs(t, err, rounddomain.ErrInputOutOfRange)
}

func TestRoundService_PlayerHistory(t *testing.T) {
	svc := newTestService(seasonLedger(), nil, testScoring())

	history, err := svc.PlayerHistory(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, history, 5)
	for i, rec := range history {
		assert.Equal(t, i, rec.Week)
	}
}

func TestRoundService_ImportScorecard(t *testing.T) {
	ctx := context.Background()
	fake := seasonLedger()
	svc := newTestService(fake, NewFakePublisher(), testScoring())

	card := "Name,1,2,3,4,5,6,7,8,9,Total\n" +
		"Par,4,4,4,4,4,4,4,4,4,36\n" +
		"alice,4,3,2,5,5,5,5,5,5,39\n" +
		"bob,DNF\n" +
		"zed,4,4,4,4,4,4,4,4,4,36\n"

	res, err := svc.ImportScorecard(ctx, 5, "week5.csv", []byte(card))
	require.NoError(t, err)
	require.Len(t, res.Recorded, 2)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "zed", res.Rejected[0].Player)

	alice := res.Recorded[0].Record
	assert.Equal(t, 39, alice.Gross)
	assert.Equal(t, 1, alice.Pars)
	assert.Equal(t, 1, alice.Birdies)
	assert.Equal(t, 1, alice.Eagles)
	assert.True(t, res.Recorded[1].Record.DNF)

	_, err = svc.ImportScorecard(ctx, 5, "week5.pdf", []byte("x"))
	require.ErrorIs(t, err, ErrInvalidScorecard)
}

func TestRoundService_ImportScorecard_LedgerErrorsAbort(t *testing.T) {
	card := "Par,4,4,4,4,4,4,4,4,4\n" +
		"alice,4,4,4,4,4,4,4,4,4\n" +
		"bob,4,4,4,4,4,4,4,4,4\n"

	tests := []struct {
		name    string
		readErr error
		wantErr error
	}{
		{
			name:    "corrupt ledger row",
			readErr: fmt.Errorf("rounddb.xlsx row 3: %w: %w", rounddb.ErrCorruptRow, errors.New("column Gross_Score: invalid syntax")),
			wantErr: rounddb.ErrCorruptRow,
		},
		{
			name:    "ledger unavailable",
			readErr: fmt.Errorf("rounddb.ReadAll: %w", rounddb.ErrLedgerUnavailable),
			wantErr: rounddb.ErrLedgerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := seasonLedger()
			fake.ReadAllFunc = func(ctx context.Context) ([]rounddomain.RoundRecord, error) {
				return nil, tt.readErr
			}
			svc := newTestService(fake, NewFakePublisher(), testScoring())

			res, err := svc.ImportScorecard(context.Background(), 5, "week5.csv", []byte(card))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, res.Recorded)
			assert.Empty(t, res.Rejected)
			assert.Equal(t, []string{"ReadAll"}, fake.Trace())
		})
	}
}
