package leaderboardhandlers

import (
	"log/slog"

	leaderboardservice "github.com/Black-And-White-Club/frolf-league/app/modules/leaderboard/application"
	"github.com/go-chi/chi/v5"
)

// LeaderboardHandlers serves the standings endpoints and reacts to ledger
// change events.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
}

// NewLeaderboardHandlers creates a new instance of LeaderboardHandlers.
func NewLeaderboardHandlers(service leaderboardservice.Service, logger *slog.Logger) *LeaderboardHandlers {
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes mounts the leaderboard endpoints on r.
func (h *LeaderboardHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/standings", h.SeasonStandings)
	r.Get("/standings/chart.png", h.StandingsChart)
	r.Get("/standings/export.xlsx", h.ExportWorkbook)
	r.Get("/weeks/{week}", h.WeeklyResults)
}
