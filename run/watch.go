package run

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the local file at path each time it is saved and passes the
// outcome to fn.  Bursts of events within the debounce window cause a single
// reload.  Watch blocks until ctx is done.
func (s *Service) Watch(ctx context.Context, path string, fn func(*Loaded, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file, so the directory is watched
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", path, err)
	}
	s.logger.Info("watching parameter file", zap.String("path", abs))

	tick := s.debounce / 4
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug("file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending = time.Now()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", zap.Error(err))
		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < s.debounce {
				continue
			}
			pending = time.Time{}
			fn(s.Load(ctx, abs))
		}
	}
}
