// Package worker runs per-event report jobs on a bounded set of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

// JobFunc computes the result for one event.
type JobFunc[T any] func(ctx context.Context, key model.EventKey) (T, error)

// Pool fans jobs out to a fixed number of workers.
type Pool[T any] struct {
	workers int
	log     logger.Logger
}

// New creates a pool. The default worker count is runtime.NumCPU().
func New[T any](opts ...Option) *Pool[T] {
	s := settings{workers: runtime.NumCPU(), log: logger.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Pool[T]{workers: s.workers, log: s.log}
}

// Workers returns the configured concurrency.
func (p *Pool[T]) Workers() int { return p.workers }

// Run executes fn for every job and returns the results in job order.
// The first failing job cancels the rest and its error is returned.
// Cancelling ctx stops pending jobs and returns ctx.Err().
func (p *Pool[T]) Run(ctx context.Context, jobs []model.EventKey, fn JobFunc[T]) ([]T, error) {
	results := make([]T, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(p.workers, len(jobs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				res, err := p.runJob(ctx, jobs[i], fn)
				if err != nil {
					fail(err)
					continue
				}
				results[i] = res
			}
		}()
	}

feed:
	for i := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pool[T]) runJob(ctx context.Context, key model.EventKey, fn JobFunc[T]) (T, error) {
	metrics.AddWorkerActive(1)
	defer metrics.AddWorkerActive(-1)

	start := time.Now()
	res, err := fn(ctx, key)
	metrics.RecordWorkerJob(float64(time.Since(start).Microseconds())/1000, err)
	if err != nil {
		p.log.Error(ctx, "report job failed",
			logger.Int("season", key.Season),
			logger.Int("round", key.Round),
			logger.Error(err))
		return res, fmt.Errorf("event %d/%d: %w", key.Season, key.Round, err)
	}
	return res, nil
}
