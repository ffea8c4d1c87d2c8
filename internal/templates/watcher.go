package templates

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback is called after a watcher-driven reload.
type ReloadCallback func()

// Watch starts an fsnotify watcher on the template directory and reloads
// the registry whenever a definition file changes, until ctx is cancelled.
// Bursts of events (editors often write twice) are debounced.
func (r *Registry) Watch(ctx context.Context, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(r.dir); err != nil {
		// Directory may not exist; templates are optional.
		logger.Warn("templates: watch disabled", slog.String("dir", r.dir), slog.String("error", err.Error()))
		<-ctx.Done()
		return nil
	}

	logger.Info("templates: watching", slog.String("dir", r.dir))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("templates: watcher stopped")
			return nil

		case <-reloadCh:
			if err := r.Reload(); err != nil {
				logger.Warn("templates: reload failed", slog.String("error", err.Error()))
			} else {
				logger.Debug("templates: reloaded")
				if cb != nil {
					cb()
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".yaml") && !strings.HasSuffix(ev.Name, ".yml") {
				continue
			}
			scheduleReload()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("templates: watcher error", slog.String("error", err.Error()))
		}
	}
}
