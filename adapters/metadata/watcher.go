package metadata

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/danielxmed/nobra-calculator/internal"
)

// Watch monitors the metadata directory and calls onChange each time a
// descriptor file is written, created, removed or renamed. It runs until
// ctx is cancelled.
//
// onChange is expected to trigger a catalogue reload; a failed reload keeps
// the previous snapshot live, so spurious change events are harmless.
func Watch(ctx context.Context, dir string, logger *internal.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	logger.Info("metadata: watching %s for changes", dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("metadata: %s changed (%s), triggering reload", event.Name, event.Op)
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("metadata: watcher error: %v", err)
		}
	}
}
