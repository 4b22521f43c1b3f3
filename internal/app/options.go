package service

import (
	"github.com/okian/pitwall/internal/domain/palette"
	"github.com/okian/pitwall/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the dataset store the views read from.
func WithStore(store Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTopN sets how many drivers a view shows when none are selected.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithReportWorkers bounds the concurrency of ReportAll.
func WithReportWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.reportWorkers = n
		}
	}
}

// WithDefaultEvent sets the event a fresh filter points at.
func WithDefaultEvent(season, round int) Option {
	return func(s *Service) {
		if season > 0 && round > 0 {
			s.defaults.Season = season
			s.defaults.Round = round
		}
	}
}

// WithTeamColors replaces the team colour table used for driver colours.
func WithTeamColors(teams map[string]palette.TeamColors) Option {
	return func(s *Service) {
		if teams != nil {
			s.teams = teams
		}
	}
}
