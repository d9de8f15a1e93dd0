package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/frolf-league/app/observability/attr"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// Run serves the API, the metrics endpoint and the event router until ctx
// is canceled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	logger := a.obs.Logger
	g, gctx := errgroup.WithContext(ctx)

	servers := []*http.Server{{
		Addr:              a.cfg.HTTP.Address,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if addr := a.cfg.Observability.MetricsAddress; addr != "" {
		servers = append(servers, &http.Server{
			Addr:              addr,
			Handler:           a.MetricsHandler(),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g.Go(func() error {
		if err := a.router.Run(gctx); err != nil {
			return fmt.Errorf("event router: %w", err)
		}
		return nil
	})

	for _, srv := range servers {
		g.Go(func() error {
			logger.InfoContext(gctx, "Starting HTTP server", attr.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		if err := a.closeRouter(); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
