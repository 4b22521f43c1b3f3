// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file, an optional .env file and PITWALL_* env vars on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"

	"github.com/okian/pitwall/internal/domain/palette"
)

// Data source kinds.
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// TeamColor is one team's chart colours as "#rrggbb" strings.
type TeamColor struct {
	Primary   string `koanf:"primary"`
	Secondary string `koanf:"secondary"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataSource selects where the dataset is loaded from: json or sqlite.
	DataSource string `koanf:"data_source"`

	// LapsPath and PitStopsPath locate the JSON dataset files.
	LapsPath     string `koanf:"laps_path"`
	PitStopsPath string `koanf:"pitstops_path"`

	// SQLiteDSN is the database used when DataSource is sqlite.
	SQLiteDSN string `koanf:"sqlite_dsn"`

	// WatchData reloads the JSON dataset when its files change.
	WatchData bool `koanf:"watch_data"`

	// TopN is how many drivers a view shows when none are selected.
	TopN int `koanf:"top_n"`

	// CORSOrigins lists origins allowed to call the API from a browser.
	CORSOrigins []string `koanf:"cors_origins"`

	// ReportWorkers bounds the concurrency of all-event reports.
	ReportWorkers int `koanf:"report_workers"`

	// DefaultSeason and DefaultRound seed the filter when a request omits them.
	DefaultSeason int `koanf:"default_season"`
	DefaultRound  int `koanf:"default_round"`

	// TeamColors overrides or extends the built-in team colours, keyed by the
	// team name used in the data. Names must not contain dots.
	TeamColors map[string]TeamColor `koanf:"team_colors"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		DataSource:    SourceJSON,
		LapsPath:      "data/2024_2025_lap_times.json",
		PitStopsPath:  "data/2024_2025_pitstops.json",
		SQLiteDSN:     "file:data/pitwall.db",
		WatchData:     true,
		TopN:          3,
		CORSOrigins:   []string{"*"},
		ReportWorkers: runtime.NumCPU(),
		DefaultSeason: 2025,
		DefaultRound:  1,
	}
}

// TeamPalette returns the built-in team colours with TeamColors applied on
// top. A missing secondary falls back to the primary.
func (c *Config) TeamPalette() map[string]palette.TeamColors {
	out := palette.DefaultTeams()
	for team, tc := range c.TeamColors {
		secondary := tc.Secondary
		if secondary == "" {
			secondary = tc.Primary
		}
		out[team] = palette.TeamColors{Primary: tc.Primary, Secondary: secondary}
	}
	return out
}
