package config

import (
	"errors"
)

// ErrLoadConfig wraps failures reading the YAML file, the .env file or the
// PITWALL_* environment. ErrInvalidConfig marks a merged Config that fails
// Validate.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
