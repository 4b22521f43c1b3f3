package worker

import "github.com/okian/pitwall/pkg/logger"

// Option applies a configuration option to a Pool.
type Option func(*settings)

type settings struct {
	workers int
	log     logger.Logger
}

// WithWorkers sets how many jobs run at once.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the pool logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}
