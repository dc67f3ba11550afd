package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if TIPSHEET_CONFIG is set
//  3. env (prefix TIPSHEET_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("TIPSHEET_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: TIPSHEET_ADDR, TIPSHEET_DATA_DIR, ...
	// Map env keys like TIPSHEET_DATA_DIR -> data_dir (flat keys,
	// underscores preserved to match koanf tags on the struct).
	envProvider := env.Provider("TIPSHEET_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "tipsheet_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SourceURL == "":
		return fmt.Errorf("%w: source_url must not be empty", ErrInvalidConfig)
	case c.ResultsURL == "":
		return fmt.Errorf("%w: results_url must not be empty", ErrInvalidConfig)
	case c.DataDir == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case c.FuzzyThreshold < 0 || c.FuzzyThreshold > 100:
		return fmt.Errorf("%w: fuzzy_threshold must be in [0,100]", ErrInvalidConfig)
	case c.FetchTimeoutS <= 0:
		return fmt.Errorf("%w: fetch_timeout_s must be positive", ErrInvalidConfig)
	}
	return nil
}
