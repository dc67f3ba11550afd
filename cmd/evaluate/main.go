// One-shot evaluation run: reconcile the newest persisted ticket against
// the results feed and print the verdict report.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jsvoboda/tipsheet/internal/adapters/results"
	"github.com/jsvoboda/tipsheet/internal/adapters/storage"
	app "github.com/jsvoboda/tipsheet/internal/app"
	"github.com/jsvoboda/tipsheet/internal/config"
	"github.com/jsvoboda/tipsheet/internal/domain/match"
	"github.com/jsvoboda/tipsheet/pkg/logger"
)

func main() {
	if err := logger.InitWithWriter(os.Stderr); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	svc := app.New(
		app.WithResultsFeed(results.New(
			results.WithBaseURL(cfg.ResultsURL),
			results.WithToken(cfg.ResultsToken),
			results.WithTimeout(time.Duration(cfg.FetchTimeoutS)*time.Second),
		)),
		app.WithStore(storage.New(cfg.DataDir)),
		app.WithMatcher(match.New(match.WithThreshold(cfg.FuzzyThreshold))),
	)

	if err := svc.RunEvaluation(context.Background(), os.Stdout); err != nil {
		os.Stderr.WriteString("evaluation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
