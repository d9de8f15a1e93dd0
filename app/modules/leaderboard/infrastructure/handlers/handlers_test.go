package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Black-And-White-Club/frolf-league/app/eventbus"
	leaderboarddomain "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/domain"
	roundevents "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain/events"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(svc *FakeService) (*LeaderboardHandlers, http.Handler) {
	h := NewLeaderboardHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Route("/api", h.RegisterRoutes)
	return h, r
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLeaderboardHandlers_SeasonStandings(t *testing.T) {
	fake := NewFakeService()
	fake.SeasonStandingsFn = func(ctx context.Context) ([]leaderboarddomain.SeasonStanding, error) {
		return []leaderboarddomain.SeasonStanding{
			{Position: 1, Player: "bob", TotalPoints: decimal.NewFromInt(200), AvgNet: decimal.RequireFromString("69.5"), RoundsPlayed: 2},
		}, nil
	}
	_, router := newTestHandlers(fake)

	rec := get(router, "/api/standings")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0]["player"])
	assert.Equal(t, "200", got[0]["total_points"])
	assert.Equal(t, "69.5", got[0]["avg_net"])
}

func TestLeaderboardHandlers_WeeklyResults(t *testing.T) {
	fake := NewFakeService()
	fake.WeeklyResultsFn = func(ctx context.Context, week int) ([]leaderboarddomain.WeeklyResult, error) {
		assert.Equal(t, 2, week)
		return []leaderboarddomain.WeeklyResult{{Week: 2, Player: "bob", Rank: 1, Points: decimal.NewFromInt(100)}}, nil
	}
	_, router := newTestHandlers(fake)

	rec := get(router, "/api/weeks/2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rank":1`)

	rec = get(router, "/api/weeks/two")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardHandlers_LedgerUnavailable(t *testing.T) {
	fake := NewFakeService()
	fake.SeasonStandingsFn = func(ctx context.Context) ([]leaderboarddomain.SeasonStanding, error) {
		return nil, fmt.Errorf("SeasonStandings: %w", rounddb.ErrLedgerUnavailable)
	}
	fake.ExportWorkbookFn = func(ctx context.Context, w io.Writer) error {
		return fmt.Errorf("ExportWorkbook: %w", rounddb.ErrLedgerUnavailable)
	}
	_, router := newTestHandlers(fake)

	assert.Equal(t, http.StatusServiceUnavailable, get(router, "/api/standings").Code)

	rec := get(router, "/api/standings/export.xlsx")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestLeaderboardHandlers_ChartAndExport(t *testing.T) {
	fake := NewFakeService()
	fake.StandingsChartFn = func(ctx context.Context) ([]byte, error) {
		return []byte("\x89PNG fake"), nil
	}
	fake.ExportWorkbookFn = func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("PK fake"))
		return err
	}
	_, router := newTestHandlers(fake)

	rec := get(router, "/api/standings/chart.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG fake", rec.Body.String())

	rec = get(router, "/api/standings/export.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "standings.xlsx")
	assert.Equal(t, "7", rec.Header().Get("Content-Length"))
}

func TestLeaderboardHandlers_HandleRoundRecorded(t *testing.T) {
	t.Run("invalidates on a valid event", func(t *testing.T) {
		fake := NewFakeService()
		h, _ := newTestHandlers(fake)

		msg, err := eventbus.NewMessage(context.Background(), roundevents.RoundRecordedPayloadV1{Week: 3, Player: "alice"})
		require.NoError(t, err)

		require.NoError(t, h.HandleRoundRecorded(msg))
		assert.Equal(t, []string{"Invalidate"}, fake.Trace())
	})

	t.Run("invalidates and acks a malformed event", func(t *testing.T) {
		fake := NewFakeService()
		h, _ := newTestHandlers(fake)

		require.NoError(t, h.HandleRoundRecorded(message.NewMessage("id-1", []byte("{not json"))))
		assert.Equal(t, []string{"Invalidate"}, fake.Trace())
	})
}
