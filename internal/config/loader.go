package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables that steer loading itself.
const (
	envPrefix  = "PITWALL_"
	envConfig  = "PITWALL_CONFIG"
	envEnvFile = "PITWALL_ENV_FILE"

	defaultEnvFile = ".env"
)

// Load builds a Config from the file named by PITWALL_CONFIG (if any).
// See LoadFrom for the layering rules.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, os.Getenv(envConfig))
}

// LoadFrom builds a Config by layering, low to high precedence:
//  1. defaults (New())
//  2. YAML file at path, when path is non-empty
//  3. variables from the .env file (PITWALL_ENV_FILE or ./.env, when present);
//     they never override variables already set in the process
//  4. env (prefix PITWALL_)
func LoadFrom(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	// PITWALL_TOP_N -> top_n. Keys are flat, so underscores are kept.
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix))
		if key == "cors_origins" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the rest of the process relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataSource != SourceJSON && c.DataSource != SourceSQLite:
		return fmt.Errorf("%w: data_source must be %q or %q, got %q", ErrInvalidConfig, SourceJSON, SourceSQLite, c.DataSource)
	case c.DataSource == SourceJSON && (c.LapsPath == "" || c.PitStopsPath == ""):
		return fmt.Errorf("%w: laps_path and pitstops_path are required for json data", ErrInvalidConfig)
	case c.DataSource == SourceSQLite && c.SQLiteDSN == "":
		return fmt.Errorf("%w: sqlite_dsn is required for sqlite data", ErrInvalidConfig)
	case c.TopN < 0:
		return fmt.Errorf("%w: top_n must not be negative", ErrInvalidConfig)
	}
	for team, tc := range c.TeamColors {
		if !isHexColor(tc.Primary) || (tc.Secondary != "" && !isHexColor(tc.Secondary)) {
			return fmt.Errorf("%w: team_colors.%s needs #rrggbb colours", ErrInvalidConfig, team)
		}
	}
	return nil
}

// isHexColor accepts "#rrggbb" and "#rrggbbaa".
func isHexColor(v string) bool {
	if len(v) != 7 && len(v) != 9 || v[0] != '#' {
		return false
	}
	for _, r := range v[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// loadEnvFile applies the .env file if one is configured or present.
func loadEnvFile() error {
	path := os.Getenv(envEnvFile)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("%w: env file %s: %w", ErrLoadConfig, path, err)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
