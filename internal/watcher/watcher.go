// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package watcher reports debounced changes to endpoint manifests.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/api2spec/apiref/internal/logging"
	"github.com/api2spec/apiref/internal/scanner"
)

// relevantOps are the operations that can change a manifest's content.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher watches directories (not recursively) for manifest changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	names    []string
	logger   *log.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for change and error reports.
func WithLogger(logger *log.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithIncludePatterns restricts events to files whose base name matches the
// last segment of one of the patterns. The scanner defaults apply otherwise.
func WithIncludePatterns(patterns []string) Option {
	return func(w *Watcher) {
		if len(patterns) > 0 {
			w.names = baseNames(patterns)
		}
	}
}

// New starts watching dirs. debounceMillis is the quiet period after the
// last event before a change is reported.
func New(dirs []string, debounceMillis int, opts ...Option) (*Watcher, error) {
	if len(dirs) == 0 {
		return nil, errors.New("no directories to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: time.Duration(debounceMillis) * time.Millisecond,
		names:    baseNames(scanner.DefaultIncludePatterns()),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run calls onChange after every debounced burst of relevant events until
// ctx is cancelled. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		case e, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if e.Op&relevantOps == 0 || !w.Relevant(e.Name) {
				continue
			}
			w.logger.Debug("manifest changed", "file", e.Name, "op", e.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			timer, fire = nil, nil
			w.logger.Info("manifests changed")
			onChange()
		}
	}
}

// Relevant reports whether a changed file is a manifest.
func (w *Watcher) Relevant(name string) bool {
	base := filepath.Base(name)
	for _, pattern := range w.names {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func baseNames(patterns []string) []string {
	names := make([]string, 0, len(patterns))
	for _, p := range patterns {
		names = append(names, path.Base(filepath.ToSlash(p)))
	}
	return names
}
