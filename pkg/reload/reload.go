// Package reload watches a rule file and calls back when it changes.
package reload

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rubiojr/tracklog/pkg/log"
)

var logger = log.Track()

// Settle is how long Watch waits after an event before calling back, so that
// editors have finished writing. Rename and remove events wait twice as long.
var Settle = 100 * time.Millisecond

// Watch calls onChange every time the file at path is written, created or
// replaced. It blocks until ctx is done. Errors returned by onChange are
// logged and do not stop the watch.
func Watch(ctx context.Context, path string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Tagged("watch", "failed to close config file watcher:", err)
		}
	}()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching config file %s: %w", path, err)
	}
	logger.Tagged("watch", "watching config file for changes:", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Rename and remove cover editors that save atomically
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			logger.Tagged("watch", "config file changed:", event.Name, event.Op.String())

			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				if !settle(ctx, 2*Settle) {
					return nil
				}

				if _, err := os.Stat(path); os.IsNotExist(err) {
					logger.Tagged("watch", "config file was removed and not replaced, skipping reload")
					continue
				}
				if err := watcher.Add(path); err != nil {
					logger.Tagged("watch", "failed to re-add config file to watcher:", err)
				}
			} else if !settle(ctx, Settle) {
				return nil
			}

			if err := onChange(); err != nil {
				logger.Tagged("reload", "failed to reload configuration:", err)
				continue
			}
			logger.Tagged("reload", "configuration reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Tagged("watch", "config file watcher error:", err)
		}
	}
}

// settle waits for d and reports false if ctx is done first.
func settle(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
