package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/pitwall/internal/adapters/source"
	"github.com/okian/pitwall/pkg/logger"
)

// Watch reloads the store through loader whenever one of paths is written or
// created. It watches the parent directories so editors that save by rename
// are seen too. Bursts of events within the debounce window cause one reload.
// A failed reload is logged and the previous snapshot stays current.
// Watch blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context, paths []string, loader source.Loader) error {
	if len(paths) == 0 {
		return ErrNoPaths
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	s.log.Info(ctx, "watching dataset files", logger.Strings("paths", paths))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !files[name] {
				continue
			}
			s.log.Debug(ctx, "dataset file changed", logger.String("path", name), logger.String("op", event.Op.String()))
			pending = time.After(s.debounce)

		case <-pending:
			pending = nil
			if _, err := s.Reload(ctx, loader); err != nil {
				s.log.Error(ctx, "dataset reload failed, keeping previous snapshot", logger.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error(ctx, "dataset watcher error", logger.Error(err))
		}
	}
}
