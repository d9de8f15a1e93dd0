package roundhandlers

import (
	"log/slog"

	roundservice "github.com/Black-And-White-Club/frolf-league/app/modules/round/application"
	"github.com/go-chi/chi/v5"
)

// maxScorecardBytes caps an uploaded scorecard.
const maxScorecardBytes = 5 << 20

// RoundHandlers serves the round submission endpoints.
type RoundHandlers struct {
	service roundservice.Service
	logger  *slog.Logger
}

// NewRoundHandlers creates a new RoundHandlers.
func NewRoundHandlers(service roundservice.Service, logger *slog.Logger) *RoundHandlers {
	return &RoundHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes mounts the round endpoints on r.
func (h *RoundHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/players", h.RegisterPlayer)
	r.Get("/players/{player}/handicap", h.PreviewHandicap)
	r.Get("/players/{player}/rounds", h.PlayerHistory)
	r.Post("/rounds", h.SubmitRound)
	r.Post("/weeks/{week}/scorecard", h.ImportScorecard)
}
