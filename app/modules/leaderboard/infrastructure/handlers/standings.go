package leaderboardhandlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/frolf-league/app/httpapi"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SeasonStandings handles GET /api/standings.
func (h *LeaderboardHandlers) SeasonStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.SeasonStandings(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, standings)
}

// WeeklyResults handles GET /api/weeks/{week}.
func (h *LeaderboardHandlers) WeeklyResults(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		httpapi.WriteErrorStatus(w, http.StatusBadRequest, errors.New("week must be an integer"))
		return
	}

	results, err := h.service.WeeklyResults(r.Context(), week)
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, results)
}

// StandingsChart handles GET /api/standings/chart.png.
func (h *LeaderboardHandlers) StandingsChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.StandingsChart(r.Context())
	if err != nil {
		httpapi.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(png)
}

// ExportWorkbook handles GET /api/standings/export.xlsx. The workbook is
// built in memory so a failure can still be reported as JSON.
func (h *LeaderboardHandlers) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.ExportWorkbook(r.Context(), &buf); err != nil {
		httpapi.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="standings.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
