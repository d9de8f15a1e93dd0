package app

import (
	"net/http"

	"github.com/Black-And-White-Club/frolf-league/app/httpapi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Module is an application module exposing HTTP endpoints under /api.
type Module interface {
	RegisterRoutes(r chi.Router)
}

// Handler builds the HTTP API. /metrics is mounted here only when no
// separate metrics address is configured.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		httpapi.CorrelationIDMiddleware,
		httpapi.RequestLogger(a.obs.Logger),
		chimiddleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if a.cfg.Observability.MetricsAddress == "" && a.obs.Registry != nil {
		r.Method(http.MethodGet, "/metrics", a.MetricsHandler())
	}

	limiter := httpapi.NewIPRateLimiter(rate.Limit(a.cfg.HTTP.RateLimit), a.cfg.HTTP.RateBurst)
	r.Route("/api", func(api chi.Router) {
		api.Use(httpapi.RateLimitMiddleware(limiter))
		registerModules(api, a.Round, a.Leaderboard)
	})
	return r
}

func registerModules(r chi.Router, modules ...Module) {
	for _, m := range modules {
		m.RegisterRoutes(r)
	}
}
