package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/yildizm/CalcBuilder/internal/logger"
	"github.com/yildizm/CalcBuilder/internal/session"
)

// Watch reloads the record whenever the storage file is written and passes it to
// onChange. It watches the parent directory so atomic replaces are seen, and
// blocks until ctx is cancelled.
func (f *FileStore) Watch(ctx context.Context, onChange func(*session.Record)) error {
	target, err := filepath.Abs(f.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", f.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			f.logger().Warn("failed to close watcher: %v", err)
		}
	}()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	f.logger().DebugWithFields("watching storage", []logger.Field{logger.Path(target)})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			rec, err := f.Load()
			if err != nil {
				// Partial writes and cleared namespaces are expected between saves
				if !errors.Is(err, ErrNotFound) {
					f.logger().WarnWithFields("failed to reload storage", []logger.Field{logger.Path(target), logger.Error(err)})
				}
				continue
			}
			onChange(rec)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.logger().WarnWithFields("watcher error", []logger.Field{logger.Error(err)})
		}
	}
}
