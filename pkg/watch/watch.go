// Package watch recompiles Markdown sources as they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/mdtmpl/internal/logging"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

// Processor compiles and removes templates for individual sources.
// *runner.Pipeline implements it.
type Processor interface {
	Process(ctx context.Context, path string) runner.FileOutcome
	Remove(ctx context.Context, path string) runner.FileOutcome
}

type action int

const (
	actionNone action = iota
	actionCompile
	actionRemove
)

// classify maps a file-system event on an accepted source to what the loop
// does with it. Chmod-only events are ignored.
func classify(event fsnotify.Event) action {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return actionRemove
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return actionCompile
	default:
		return actionNone
	}
}

// Watcher observes a content root recursively and hands every change of a
// source to a Processor, one event at a time.
type Watcher struct {
	filter    runner.Filter
	processor Processor
	fsw       *fsnotify.Watcher
}

// New creates a Watcher and registers every non-skipped directory under
// filter.Root. Changes made after New returns are observed.
func New(filter runner.Filter, processor Processor) (*Watcher, error) {
	info, err := os.Stat(filter.Root)
	if err != nil {
		return nil, fmt.Errorf("stat content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", filter.Root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{filter: filter, processor: processor, fsw: fsw}
	if _, err := w.addTree(filter.Root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run handles events until ctx is cancelled. It closes the underlying
// watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	logger := logging.FromContext(ctx)
	logger.Info("watching", logging.FieldSource, w.filter.Root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	logger := logging.FromContext(ctx)
	logger.Debug("event", logging.FieldEvent, event.Op.String(), logging.FieldPath, event.Name)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addDir(ctx, event.Name)
			return
		}
	}

	if !w.filter.Accepts(event.Name) {
		return
	}

	switch classify(event) {
	case actionCompile:
		report(ctx, w.processor.Process(ctx, event.Name))
	case actionRemove:
		report(ctx, w.processor.Remove(ctx, event.Name))
	case actionNone:
	}
}

// addDir starts watching a directory created under the root and compiles
// the sources that were written into it before the watch was in place.
func (w *Watcher) addDir(ctx context.Context, dir string) {
	sources, err := w.addTree(dir)
	if err != nil {
		logging.FromContext(ctx).Warn("watch directory", logging.FieldPath, dir, logging.FieldError, err)
	}

	for _, source := range sources {
		report(ctx, w.processor.Process(ctx, source))
	}
}

// addTree watches root and every non-skipped directory below it, and
// returns the sources found on the way.
func (w *Watcher) addTree(root string) ([]string, error) {
	var sources []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) || errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}

		if !entry.IsDir() {
			if w.filter.Accepts(path) {
				sources = append(sources, path)
			}
			return nil
		}

		if w.filter.SkipDir(path) {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return sources, fmt.Errorf("watch tree %s: %w", root, err)
	}

	return sources, nil
}

// report logs the outcome of one event. Failures are logged and dropped.
func report(ctx context.Context, outcome runner.FileOutcome) {
	logger := logging.FromContext(ctx).With(logging.FieldSource, outcome.Path)

	for _, d := range outcome.Diagnostics {
		logger.Warn(d.Message, logging.FieldLine, d.Line)
	}

	switch outcome.Status {
	case runner.StatusFailed:
		logger.Error("compile failed", logging.FieldError, outcome.Error)
	case runner.StatusWritten:
		logger.Info("compiled", logging.FieldDest, outcome.Destination)
	case runner.StatusRemoved:
		logger.Info("removed", logging.FieldDest, outcome.Destination)
	case runner.StatusUnchanged:
		logger.Debug("unchanged", logging.FieldDest, outcome.Destination)
	}
}
