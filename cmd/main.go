package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsvoboda/tipsheet/internal/adapters/fetch"
	"github.com/jsvoboda/tipsheet/internal/adapters/http/api"
	"github.com/jsvoboda/tipsheet/internal/adapters/results"
	"github.com/jsvoboda/tipsheet/internal/adapters/storage"
	app "github.com/jsvoboda/tipsheet/internal/app"
	"github.com/jsvoboda/tipsheet/internal/config"
	"github.com/jsvoboda/tipsheet/internal/domain/match"
	"github.com/jsvoboda/tipsheet/pkg/logger"
)

// HTTP server timeout constants. Pipeline runs block the handler, so the
// write timeout has to cover a full fetch + parse round.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 120 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	timeout := time.Duration(cfg.FetchTimeoutS) * time.Second
	svc := app.New(
		app.WithLogger(log),
		app.WithSourceURL(cfg.SourceURL),
		app.WithFetcher(fetch.New(fetch.WithTimeout(timeout))),
		app.WithResultsFeed(results.New(
			results.WithBaseURL(cfg.ResultsURL),
			results.WithToken(cfg.ResultsToken),
			results.WithTimeout(timeout),
		)),
		app.WithStore(storage.New(cfg.DataDir)),
		app.WithMatcher(match.New(match.WithThreshold(cfg.FuzzyThreshold))),
	)

	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
