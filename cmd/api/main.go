// Package main starts an HTTP server that provides endpoints for health checks
// and GO-CAM model analysis. It uses the internal handlers package to process
// incoming requests and return JSON responses.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pombase/pombase-gocam-tool/cmd/api/middleware"
	"github.com/pombase/pombase-gocam-tool/internal/analysis"
	"github.com/pombase/pombase-gocam-tool/internal/config"
	"github.com/pombase/pombase-gocam-tool/internal/handlers"
	"github.com/pombase/pombase-gocam-tool/internal/logger"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "gocam-tool-api:", err)
		os.Exit(1)
	}
	log := logger.Setup(os.Stderr, cfg.Log, false)

	handler, err := newHandler(cfg, log)
	if err != nil {
		log.Error("building handler", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg.Server.Addr, handler, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newRouter(h *handlers.AnalysisHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.HandleFunc("/holes", h.Holes)
	mux.HandleFunc("/stats", h.Stats)
	mux.HandleFunc("/analyze", h.Analyze)
	return mux
}

// newHandler wires the router with the middleware stack and the configured
// request timeout.
func newHandler(cfg *config.Config, log *slog.Logger) (http.Handler, error) {
	runner := analysis.NewRunner(cfg.Analysis, log)
	h, err := handlers.NewAnalysisHandler(runner, cfg.Server.CacheSize, cfg.Server.MaxBodyBytes, log)
	if err != nil {
		return nil, err
	}

	var routes http.Handler = newRouter(h)
	timeout, err := cfg.Server.Timeout()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		routes = http.TimeoutHandler(routes, timeout, "Request timed out")
	}

	return middleware.Chain(routes,
		middleware.RequestID,
		middleware.Logging(log),
		middleware.Cors(cfg.Server.CORSAllowedOrigin),
	), nil
}

func serve(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
