package services

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/eshmelev/dropspace/internal/filex"
	"github.com/eshmelev/dropspace/internal/logging"
)

// Watcher stages files dropped into a watched directory. Only files whose
// base name matches the glob pattern are picked up.
type Watcher struct {
	staging *Staging
	dir     string
	pattern string
	log     logging.Logger
}

func NewWatcher(staging *Staging, dir, pattern string, log logging.Logger) *Watcher {
	return &Watcher{staging: staging, dir: dir, pattern: pattern, log: log}
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	w.log.Info(ctx, "watching directory", "dir", w.dir, "pattern", w.pattern)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.stage(ctx, event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, "watch error", "error", err)
		}
	}
}

func (w *Watcher) stage(ctx context.Context, path string) {
	matched, err := doublestar.Match(w.pattern, filepath.Base(path))
	if err != nil {
		w.log.Warn(ctx, "bad watch pattern", "pattern", w.pattern, "error", err)
		return
	}
	if !matched {
		return
	}

	file, err := filex.StageFromPath(path)
	if err != nil {
		w.log.Warn(ctx, "staging watched file", "path", path, "error", err)
		return
	}
	w.staging.Select(file)
	w.log.Info(ctx, "file staged", "name", file.Name, "size", file.Size)
}
