package config

import (
	"errors"
)

// Error kinds reported by loading and validation, matchable with
// errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
