package roundhandlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/frolf-league/app/httpapi"
	roundservice "github.com/Black-And-White-Club/frolf-league/app/modules/round/application"
	"github.com/Black-And-White-Club/frolf-league/app/observability/attr"
	"github.com/go-chi/chi/v5"
)

// RegisterPlayer handles POST /api/players.
func (h *RoundHandlers) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req RegisterPlayerRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteErrorStatus(w, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err))
		return
	}

	rec, err := h.service.RegisterPlayer(r.Context(), req.Player, req.Handicap, req.PIN)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, rec)
}

// SubmitRound handles POST /api/rounds.
func (h *RoundHandlers) SubmitRound(w http.ResponseWriter, r *http.Request) {
	var req SubmitRoundRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteErrorStatus(w, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err))
		return
	}

	res, err := h.service.SubmitRound(r.Context(), req.Submission())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, SubmitRoundResponse{
		Record:   res.Record,
		Replaced: res.Replaced(),
		Previous: res.Previous,
	})
}

// PreviewHandicap handles GET /api/players/{player}/handicap?week=N.
func (h *RoundHandlers) PreviewHandicap(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil {
		httpapi.WriteErrorStatus(w, http.StatusBadRequest, errors.New("week query parameter must be an integer"))
		return
	}

	handicap, err := h.service.PreviewHandicap(r.Context(), player, week)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, HandicapResponse{Player: player, Week: week, Handicap: handicap})
}

// PlayerHistory handles GET /api/players/{player}/rounds.
func (h *RoundHandlers) PlayerHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.PlayerHistory(r.Context(), chi.URLParam(r, "player"))
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, history)
}

// ImportScorecard handles POST /api/weeks/{week}/scorecard as a multipart
// upload with the card in the "file" field.
func (h *RoundHandlers) ImportScorecard(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		httpapi.WriteErrorStatus(w, http.StatusBadRequest, errors.New("week must be an integer"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxScorecardBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		httpapi.WriteErrorStatus(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpapi.WriteErrorStatus(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}

	res, err := h.service.ImportScorecard(r.Context(), week, header.Filename, data)
	if err != nil {
		if errors.Is(err, roundservice.ErrInvalidScorecard) {
			httpapi.WriteErrorStatus(w, http.StatusBadRequest, err)
			return
		}
		httpapi.WriteError(w, err)
		return
	}

	if len(res.Rejected) > 0 {
		h.logger.WarnContext(r.Context(), "Scorecard rows rejected",
			attr.Week(week),
			attr.Int("rejected", len(res.Rejected)),
			attr.ExtractCorrelationID(r.Context()),
		)
	}
	httpapi.WriteJSON(w, http.StatusOK, res)
}
