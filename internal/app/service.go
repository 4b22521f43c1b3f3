// Package service composes the dataset store and the analytics core into the
// dashboard views served by the HTTP API and the report CLI.
package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/okian/pitwall/internal/adapters/repository"
	"github.com/okian/pitwall/internal/adapters/source"
	"github.com/okian/pitwall/internal/adapters/worker"
	"github.com/okian/pitwall/internal/domain/analytics"
	"github.com/okian/pitwall/internal/domain/filter"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/internal/domain/palette"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

const defaultTopN = 3

// Store is the part of the dataset store the service reads.
type Store interface {
	Snapshot() (*repository.Snapshot, error)
	Reload(ctx context.Context, loader source.Loader) (*repository.Snapshot, error)
}

// Service recomputes every view from the current snapshot on each call.
type Service struct {
	store         Store
	logger        logger.Logger
	topN          int
	reportWorkers int
	defaults      filter.Filter
	teams         map[string]palette.TeamColors
	started       time.Time
}

// New constructs a Service. Without WithStore it reads from an empty store.
func New(opts ...Option) *Service {
	s := &Service{
		topN:          defaultTopN,
		reportWorkers: runtime.NumCPU(),
		defaults:      filter.Default(),
		teams:         palette.DefaultTeams(),
		started:       time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.store == nil {
		s.store = repository.NewStore(repository.WithLogger(s.logger))
	}
	return s
}

// DefaultFilter returns the filter a request starts from.
func (s *Service) DefaultFilter() filter.Filter {
	f := s.defaults
	f.Drivers = []string{}
	return f
}

// Reload loads a fresh dataset and publishes it.
func (s *Service) Reload(ctx context.Context, loader source.Loader) error {
	_, err := s.store.Reload(ctx, loader)
	return err
}

// Consistency scores the lap-time consistency of the selected drivers inside
// the lap window.
func (s *Service) Consistency(ctx context.Context, f filter.Filter) (out []model.ConsistencyResult, err error) {
	defer s.observe(ctx, metrics.ComponentConsistency, f, time.Now(), &err)

	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	laps := f.SelectDrivers(f.RangeLaps(snap.Dataset.Laps))
	return analytics.Consistency(laps), nil
}

// LostTimes returns the chartable pit-stop losses of the event: stops with a
// positive loss, ordered by lap, for the selected drivers or the first topN of
// the running order.
func (s *Service) LostTimes(ctx context.Context, f filter.Filter) (out []model.LostTimeRecord, err error) {
	defer s.observe(ctx, metrics.ComponentLostTime, f, time.Now(), &err)

	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	laps := f.EventLaps(snap.Dataset.Laps)
	records := analytics.LostTimes(laps, f.EventStops(snap.Dataset.PitStops))
	return analytics.ChartableLostTimes(records, s.driverScope(f, laps)), nil
}

// Stints reconstructs the tire strategy of the event for the selected drivers.
func (s *Service) Stints(ctx context.Context, f filter.Filter) (out StintsView, err error) {
	defer s.observe(ctx, metrics.ComponentStints, f, time.Now(), &err)

	snap, err := s.store.Snapshot()
	if err != nil {
		return StintsView{}, err
	}
	laps := f.EventLaps(snap.Dataset.Laps)
	maxLap := analytics.MaxLap(laps)
	rows := analytics.Stints(laps, f.EventStops(snap.Dataset.PitStops), f.Drivers, maxLap)

	out = StintsView{MaxLap: maxLap, Drivers: make([]DriverStintsView, 0, len(rows))}
	for _, row := range rows {
		bands, tail := analytics.StintBands(row.Stints, maxLap)
		out.Drivers = append(out.Drivers, DriverStintsView{DriverStints: row, Bands: bands, Tail: tail})
	}
	return out, nil
}

// Performance aggregates pace, consistency and pit work over the timed laps of
// the lap window, limited to the selected drivers or the topN fastest.
func (s *Service) Performance(ctx context.Context, f filter.Filter) (out []model.DriverPerformanceRecord, err error) {
	defer s.observe(ctx, metrics.ComponentPerformance, f, time.Now(), &err)

	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	laps := filter.TimedLaps(f.RangeLaps(snap.Dataset.Laps))
	records := analytics.DriverPerformance(laps, f.EventStops(snap.Dataset.PitStops))

	if len(f.Drivers) == 0 {
		return records[:min(s.topN, len(records))], nil
	}
	out = make([]model.DriverPerformanceRecord, 0, len(f.Drivers))
	for _, r := range records {
		if f.HasDriver(r.DriverID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Laps lines up the lap times inside the lap window for the selected drivers
// or the first topN of the running order.
func (s *Service) Laps(ctx context.Context, f filter.Filter) (out LapsView, err error) {
	defer s.observe(ctx, metrics.ComponentLaps, f, time.Now(), &err)

	snap, err := s.store.Snapshot()
	if err != nil {
		return LapsView{}, err
	}
	laps := f.RangeLaps(snap.Dataset.Laps)
	series := analytics.LapTimeSeries(laps, s.driverScope(f, laps))
	return LapsView{LapSeries: series, Legend: s.legend(snap, series.Drivers)}, nil
}

// Sectors lines up the sector splits inside the lap window. It is empty
// unless drivers are selected.
func (s *Service) Sectors(ctx context.Context, f filter.Filter) (out SectorsView, err error) {
	defer s.observe(ctx, metrics.ComponentSectors, f, time.Now(), &err)

	snap, err := s.store.Snapshot()
	if err != nil {
		return SectorsView{}, err
	}
	series := analytics.SectorComparison(f.RangeLaps(snap.Dataset.Laps), f.Drivers)
	return SectorsView{SectorSeries: series, Legend: s.legend(snap, series.Drivers)}, nil
}

// PitStops lists the pit-stop durations of the event for the selected drivers,
// or every driver when none are selected.
func (s *Service) PitStops(ctx context.Context, f filter.Filter) (out []analytics.PitStopBar, err error) {
	defer s.observe(ctx, metrics.ComponentPitStops, f, time.Now(), &err)

	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.PitStopDurations(f.EventStops(snap.Dataset.PitStops), f.HasDriver), nil
}

// Summary returns the race pace summary inside the lap window.
func (s *Service) Summary(ctx context.Context, f filter.Filter) (analytics.Summary, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return analytics.Summary{}, err
	}
	sum, ok := analytics.Summarize(f.RangeLaps(snap.Dataset.Laps), f.Drivers)
	if !ok {
		return analytics.Summary{}, fmt.Errorf("%w: %d/%d", ErrNoLapData, f.Season, f.Round)
	}
	return sum, nil
}

// Catalog lists the seasons, the rounds of season and the drivers of the
// event with their chart colours.
func (s *Service) Catalog(_ context.Context, season, round int) (Catalog, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return Catalog{}, err
	}
	laps := snap.Dataset.Laps
	out := Catalog{
		Seasons: filter.Seasons(laps),
		Rounds:  filter.Rounds(laps, season),
	}

	assigner := palette.NewAssigner(s.teams)
	for _, d := range filter.Drivers(laps, season, round) {
		c := assigner.Color(d.ID, d.Team)
		out.Drivers = append(out.Drivers, DriverEntry{Driver: d, Color: c, TextColor: palette.TextColor(c)})
	}
	return out, nil
}

// Report runs every component over the whole event.
func (s *Service) Report(ctx context.Context, key model.EventKey) (EventReport, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return EventReport{}, err
	}
	return s.report(ctx, snap, key)
}

// ReportAll builds the report of every loaded event on the worker pool.
func (s *Service) ReportAll(ctx context.Context) ([]EventReport, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	pool := worker.New[EventReport](
		worker.WithWorkers(s.reportWorkers),
		worker.WithLogger(s.logger.Named("worker")),
	)
	return pool.Run(ctx, snap.Events, func(ctx context.Context, key model.EventKey) (EventReport, error) {
		return s.report(ctx, snap, key)
	})
}

func (s *Service) report(ctx context.Context, snap *repository.Snapshot, key model.EventKey) (out EventReport, err error) {
	f := filter.Filter{Season: key.Season, Round: key.Round}
	defer s.observe(ctx, metrics.ComponentReport, f, time.Now(), &err)

	if err := ctx.Err(); err != nil {
		return EventReport{}, err
	}
	if !snap.HasEvent(key.Season, key.Round) {
		return EventReport{}, fmt.Errorf("%w: %d/%d", ErrEventNotFound, key.Season, key.Round)
	}

	laps := f.EventLaps(snap.Dataset.Laps)
	stops := f.EventStops(snap.Dataset.PitStops)
	maxLap := analytics.MaxLap(laps)

	out = EventReport{
		Event:       eventKey(snap, key),
		Laps:        len(laps),
		PitStops:    len(stops),
		MaxLap:      maxLap,
		Consistency: analytics.Consistency(laps),
		LostTimes:   analytics.LostTimes(laps, stops),
		Stints:      analytics.Stints(laps, stops, nil, maxLap),
		Performance: analytics.DriverPerformance(filter.TimedLaps(laps), stops),
	}
	if sum, ok := analytics.Summarize(laps, nil); ok {
		out.Summary = &sum
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	stats := Stats{
		TopN:          s.topN,
		ReportWorkers: s.reportWorkers,
		Uptime:        time.Since(s.started).Round(time.Second).String(),
	}
	snap, err := s.store.Snapshot()
	if err != nil {
		return stats
	}
	stats.Loaded = true
	stats.Version = snap.Version
	stats.LoadedAt = snap.LoadedAt
	stats.Laps = len(snap.Dataset.Laps)
	stats.PitStops = len(snap.Dataset.PitStops)
	stats.Events = len(snap.Events)
	return stats
}

// legend colours drivers in the given order. Teams come from the first lap
// of each driver anywhere in the dataset.
func (s *Service) legend(snap *repository.Snapshot, drivers []string) []LegendEntry {
	teams := filter.DriverTeams(snap.Dataset.Laps)
	assigner := palette.NewAssigner(s.teams)
	out := make([]LegendEntry, 0, len(drivers))
	for _, id := range drivers {
		c := assigner.Color(id, teams[id])
		out = append(out, LegendEntry{DriverID: id, Team: teams[id], Color: c, TextColor: palette.TextColor(c)})
	}
	return out
}

// driverScope keeps selected drivers, or the first topN of the running order
// when nothing is selected.
func (s *Service) driverScope(f filter.Filter, laps []model.LapRecord) func(string) bool {
	if len(f.Drivers) > 0 {
		return f.HasDriver
	}
	top := make(map[string]struct{}, s.topN)
	for _, d := range filter.RaceOrder(laps, s.topN) {
		top[d] = struct{}{}
	}
	return func(id string) bool {
		_, ok := top[id]
		return ok
	}
}

func (s *Service) observe(ctx context.Context, component string, f filter.Filter, start time.Time, err *error) {
	took := time.Since(start)
	metrics.RecordComputation(component, float64(took.Microseconds())/1000, *err)
	if *err != nil {
		s.logger.Warn(ctx, "view failed",
			logger.String("component", component),
			logger.Int("season", f.Season),
			logger.Int("round", f.Round),
			logger.Error(*err))
		return
	}
	s.logger.Debug(ctx, "view computed",
		logger.String("component", component),
		logger.Int("season", f.Season),
		logger.Int("round", f.Round),
		logger.Strings("drivers", f.Drivers),
		logger.Duration("took", took))
}

func eventKey(snap *repository.Snapshot, key model.EventKey) model.EventKey {
	for _, e := range snap.Events {
		if e.Matches(key.Season, key.Round) {
			return e
		}
	}
	return key
}
