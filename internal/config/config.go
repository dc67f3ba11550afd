// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and env on top.
// - External errors must be wrapped via this package's error kinds.
package config

import (
	"github.com/jsvoboda/tipsheet/internal/domain/match"
)

// Default endpoints. The source page is static HTML; the results feed is
// the Football-Data v4 matches endpoint.
const (
	defaultSourceURL  = "https://www.vitisport.cz/index.php?clanek=quicktips&sekce=fotbal&lang=cs"
	defaultResultsURL = "https://api.football-data.org/v4/matches"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":10000".
	Addr string `koanf:"addr"`

	// SourceURL is the QuickTips HTML page to extract from.
	SourceURL string `koanf:"source_url"`

	// ResultsURL is the results feed endpoint.
	ResultsURL string `koanf:"results_url"`

	// ResultsToken is the X-Auth-Token for the results feed.
	ResultsToken string `koanf:"results_token"`

	// FuzzyThreshold is the minimum similarity (0-100) to accept a
	// ticket/result pairing.
	FuzzyThreshold int `koanf:"fuzzy_threshold"`

	// DataDir is where ticket CSV/TXT artifacts are kept.
	DataDir string `koanf:"data_dir"`

	// FetchTimeoutS bounds both collaborator HTTP calls, in seconds.
	FetchTimeoutS int `koanf:"fetch_timeout_s"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":10000",
		SourceURL:      defaultSourceURL,
		ResultsURL:     defaultResultsURL,
		FuzzyThreshold: match.DefaultThreshold,
		DataDir:        ".",
		FetchTimeoutS:  30,
	}
}
