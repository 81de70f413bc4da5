// Package server holds the HTTP plumbing shared by every storefront service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/middleware"
)

// NewRouter returns a router with tracing, request logging, panic recovery and
// sessions attached, plus /metrics and /healthz.
func NewRouter(appName string, cfg config.Application) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	router.Use(
		otelmux.Middleware(appName),
		middleware.Logging,
		middleware.RecoverPanic,
		middleware.Session(cfg.CookieSecure),
	)
	return router
}

// Serve runs the server until c is cancelled, then shuts it down gracefully.
func Serve(c context.Context, cfg config.Application, handler http.Handler) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main Serve").
		Logger()

	httpServer := http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		BaseContext:       func(net.Listener) context.Context { return c },
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       45 * time.Second,
		WriteTimeout:      45 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str(log.KeyProcess, "start server").Msgf("start listening request at %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("error=%w occured while server is running", err)
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error().Err(err).Msg(err.Error())
		}
		return err
	case <-c.Done():
	}

	logger = logger.With().Str(log.KeyProcess, "shutting down http server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("shutdown http server")
	return <-serveErr
}
