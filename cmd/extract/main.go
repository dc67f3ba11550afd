// One-shot extraction run: fetch the QuickTips page, print the ticket
// and persist the CSV/TXT artifacts.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jsvoboda/tipsheet/internal/adapters/fetch"
	"github.com/jsvoboda/tipsheet/internal/adapters/storage"
	app "github.com/jsvoboda/tipsheet/internal/app"
	"github.com/jsvoboda/tipsheet/internal/config"
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
		app.WithSourceURL(cfg.SourceURL),
		app.WithFetcher(fetch.New(fetch.WithTimeout(time.Duration(cfg.FetchTimeoutS)*time.Second))),
		app.WithStore(storage.New(cfg.DataDir)),
	)

	if err := svc.RunExtraction(context.Background(), os.Stdout); err != nil {
		os.Stderr.WriteString("extraction failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
