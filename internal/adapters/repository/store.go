// Package repository holds the loaded dataset in memory and swaps it
// atomically on reload.
package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/pitwall/internal/adapters/source"
	"github.com/okian/pitwall/internal/domain/filter"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

const defaultDebounce = 250 * time.Millisecond

// Snapshot is one immutable published dataset. Readers must not modify it.
type Snapshot struct {
	Dataset  *source.Dataset
	Events   []model.EventKey
	Version  uint64
	LoadedAt time.Time
}

// HasEvent reports whether the snapshot holds laps for season and round.
func (s *Snapshot) HasEvent(season, round int) bool {
	for _, e := range s.Events {
		if e.Matches(season, round) {
			return true
		}
	}
	return false
}

// Store publishes dataset snapshots. Reads are lock-free.
type Store struct {
	current  atomic.Pointer[Snapshot]
	version  atomic.Uint64
	reloadMu sync.Mutex

	log      logger.Logger
	debounce time.Duration
	now      func() time.Time
}

// NewStore constructs an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		log:      logger.Nop(),
		debounce: defaultDebounce,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace publishes ds as the current snapshot. A nil ds publishes an empty
// dataset.
func (s *Store) Replace(ds *source.Dataset) *Snapshot {
	if ds == nil {
		ds = &source.Dataset{}
	}
	snap := &Snapshot{
		Dataset:  ds,
		Events:   filter.Events(ds.Laps),
		Version:  s.version.Add(1),
		LoadedAt: s.now(),
	}
	s.current.Store(snap)
	metrics.UpdateDataset(len(ds.Laps), len(ds.PitStops), len(snap.Events), snap.LoadedAt.Unix())
	return snap
}

// Snapshot returns the current snapshot or ErrNotLoaded.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Events lists the events of the current snapshot, nil when nothing is loaded.
func (s *Store) Events() []model.EventKey {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	return snap.Events
}

// Reload runs loader and publishes the result. On failure the previous
// snapshot stays current.
func (s *Store) Reload(ctx context.Context, loader source.Loader) (*Snapshot, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	ds, err := loader.Load(ctx)
	metrics.RecordReload(float64(time.Since(start).Microseconds())/1000, err)
	if err != nil {
		return nil, fmt.Errorf("reload: %w", err)
	}

	snap := s.Replace(ds)
	s.log.Info(ctx, "dataset loaded",
		logger.Int("laps", len(ds.Laps)),
		logger.Int("pit_stops", len(ds.PitStops)),
		logger.Int("events", len(snap.Events)),
		logger.Int("version", int(snap.Version)),
		logger.Duration("took", time.Since(start)))
	return snap, nil
}
