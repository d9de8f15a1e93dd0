package roundhandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/frolf-league/app/httpapi"
	roundservice "github.com/Black-And-White-Club/frolf-league/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/frolf-league/app/modules/round/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc roundservice.Service) http.Handler {
	h := NewRoundHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Route("/api", h.RegisterRoutes)
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRoundHandlers_RegisterPlayer(t *testing.T) {
	fake := NewFakeService()
	fake.RegisterPlayerFn = func(ctx context.Context, player string, h decimal.Decimal, pin string) (rounddomain.RoundRecord, error) {
		assert.Equal(t, "alice", player)
		assert.Equal(t, "12.5", h.String())
		assert.Equal(t, "1234", pin)
		return rounddomain.NewBaseline(player, h, pin), nil
	}

	rec := doJSON(t, newTestRouter(fake), http.MethodPost, "/api/players", `{"player":"alice","handicap":"12.5","pin":"1234"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got rounddomain.RoundRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Player)
	assert.Zero(t, got.Week)
	assert.NotContains(t, rec.Body.String(), "1234", "pin is never returned")
}

func TestRoundHandlers_SubmitRound(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceFn  func(ctx context.Context, sub rounddomain.Submission) (roundservice.SubmitResult, error)
		wantStatus int
		verify     func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "stores a scored round",
			body: `{"week":5,"player":"alice","gross":80,"birdies":2,"pin":"1111"}`,
			serviceFn: func(ctx context.Context, sub rounddomain.Submission) (roundservice.SubmitResult, error) {
				assert.Equal(t, 80, sub.Gross)
				assert.False(t, sub.DNF)
				assert.Nil(t, sub.Handicap)
				return roundservice.SubmitResult{Record: rounddomain.RoundRecord{Week: 5, Player: "alice", Gross: 80, Net: decimal.RequireFromString("33.7")}}, nil
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp SubmitRoundResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.False(t, resp.Replaced)
				assert.Equal(t, "33.7", resp.Record.Net.String())
			},
		},
		{
			name: "dnf sentinel and handicap override",
			body: `{"week":5,"player":"bob","gross":"dnf","handicap":10}`,
			serviceFn: func(ctx context.Context, sub rounddomain.Submission) (roundservice.SubmitResult, error) {
				assert.True(t, sub.DNF)
				require.NotNil(t, sub.Handicap)
				assert.Equal(t, "10", sub.Handicap.String())
				prev := rounddomain.RoundRecord{Week: 5, Player: "bob", Gross: 90}
				return roundservice.SubmitResult{Record: rounddomain.RoundRecord{Week: 5, Player: "bob", DNF: true}, Previous: &prev}, nil
			},
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp SubmitRoundResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.True(t, resp.Replaced)
				require.NotNil(t, resp.Previous)
				assert.Equal(t, 90, resp.Previous.Gross)
			},
		},
		{
			name:       "garbage gross is a bad request",
			body:       `{"week":5,"player":"bob","gross":"eighty"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown fields are rejected",
			body:       `{"week":5,"player":"bob","gross":80,"score":80}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "out of range maps to 422",
			body: `{"week":99,"player":"bob","gross":80}`,
			serviceFn: func(ctx context.Context, sub rounddomain.Submission) (roundservice.SubmitResult, error) {
				return roundservice.SubmitResult{}, fmt.Errorf("SubmitRound: %w", &rounddomain.ValidationError{Field: "week", Reason: "week 99 outside 1..15", Err: rounddomain.ErrInputOutOfRange})
			},
			wantStatus: http.StatusUnprocessableEntity,
			verify: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp httpapi.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "week", resp.Field)
			},
		},
		{
			name: "unknown player maps to 404",
			body: `{"week":1,"player":"zed","gross":80}`,
			serviceFn: func(ctx context.Context, sub rounddomain.Submission) (roundservice.SubmitResult, error) {
				return roundservice.SubmitResult{}, fmt.Errorf("SubmitRound: %w", rounddomain.ErrUnknownPlayer)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "ledger outage maps to 503",
			body: `{"week":1,"player":"alice","gross":80}`,
			serviceFn: func(ctx context.Context, sub rounddomain.Submission) (roundservice.SubmitResult, error) {
				return roundservice.SubmitResult{}, fmt.Errorf("SubmitRound: %w", rounddb.ErrLedgerUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := NewFakeService()
			fake.SubmitRoundFn = tt.serviceFn

			rec := doJSON(t, newTestRouter(fake), http.MethodPost, "/api/rounds", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.serviceFn == nil {
				assert.Empty(t, fake.Trace(), "service must not be called for malformed input")
			}
			if tt.verify != nil {
				tt.verify(t, rec)
			}
		})
	}
}

func TestRoundHandlers_PreviewHandicap(t *testing.T) {
	fake := NewFakeService()
	fake.PreviewHandicapFn = func(ctx context.Context, player string, week int) (decimal.Decimal, error) {
		assert.Equal(t, "alice", player)
		assert.Equal(t, 5, week)
		return decimal.RequireFromString("46.3"), nil
	}
	router := newTestRouter(fake)

	rec := doJSON(t, router, http.MethodGet, "/api/players/alice/handicap?week=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"player":"alice","week":5,"handicap":"46.3"}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/players/alice/handicap", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoundHandlers_PlayerHistory(t *testing.T) {
	fake := NewFakeService()
	fake.PlayerHistoryFn = func(ctx context.Context, player string) ([]rounddomain.RoundRecord, error) {
		if player != "alice" {
			return nil, rounddomain.ErrUnknownPlayer
		}
		return []rounddomain.RoundRecord{{Week: 0, Player: "alice"}, {Week: 1, Player: "alice", Gross: 80}}, nil
	}
	router := newTestRouter(fake)

	rec := doJSON(t, router, http.MethodGet, "/api/players/alice/rounds", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []rounddomain.RoundRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 2)

	rec = doJSON(t, router, http.MethodGet, "/api/players/zed/rounds", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoundHandlers_ImportScorecard(t *testing.T) {
	upload := func(t *testing.T, handler http.Handler, path, filename, content string) *httptest.ResponseRecorder {
		t.Helper()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, path, &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("passes the upload to the service", func(t *testing.T) {
		fake := NewFakeService()
		fake.ImportScorecardFn = func(ctx context.Context, week int, filename string, data []byte) (roundservice.ImportResult, error) {
			assert.Equal(t, 3, week)
			assert.Equal(t, "week3.csv", filename)
			assert.Equal(t, "Par,3,3\nalice,3,2\n", string(data))
			return roundservice.ImportResult{
				Rejected: []roundservice.RejectedRow{{Player: "zed", Reason: "unknown player"}},
			}, nil
		}

		rec := upload(t, newTestRouter(fake), "/api/weeks/3/scorecard", "week3.csv", "Par,3,3\nalice,3,2\n")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"zed"`)
	})

	t.Run("unparseable card is a bad request", func(t *testing.T) {
		fake := NewFakeService()
		fake.ImportScorecardFn = func(ctx context.Context, week int, filename string, data []byte) (roundservice.ImportResult, error) {
			return roundservice.ImportResult{}, fmt.Errorf("ImportScorecard: %w: no par row found", roundservice.ErrInvalidScorecard)
		}
		rec := upload(t, newTestRouter(fake), "/api/weeks/3/scorecard", "week3.csv", "nope")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non numeric week", func(t *testing.T) {
		fake := NewFakeService()
		rec := upload(t, newTestRouter(fake), "/api/weeks/three/scorecard", "week3.csv", "x")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, fake.Trace())
	})
}
