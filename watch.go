package warden

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch follows modifications of the notes document until ctx is
// cancelled, invoking fn after every change. The store's atomic replace
// shows up as a create/rename of the document, so the parent directory is
// watched rather than the file itself (the old inode goes quiet after the
// first replace).
//
// This exists because other processes may share the backing file; the
// store lock serializes their writes, and Watch lets an operator observe
// them as they land.
func (s *Service) Watch(ctx context.Context, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.cfg.NotesPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	base := filepath.Base(s.cfg.NotesPath)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if s.logger != nil {
				s.logger.Debug("notes document changed", "op", ev.Op.String())
			}
			fn()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if s.logger != nil {
				s.logger.Warn("watcher error", "error", err)
			}
		}
	}
}
