// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package watch re-runs a callback whenever a snapshot file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits after the last change
// before running the callback.
const DefaultDebounce = 200 * time.Millisecond

// Watcher observes a single file. The parent directory is watched so that
// editors replacing the file atomically are still noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	log      logrus.FieldLogger
}

// New creates a Watcher for path.
func New(path string, log logrus.FieldLogger) *Watcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{path: path, debounce: DefaultDebounce, log: log}
}

// WithDebounce sets the quiet period after a change.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run calls fn once, then again after every change of the watched file,
// until ctx is done. Errors returned by fn are logged and watching goes on.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	log := w.log.WithField("path", w.path)
	w.invoke(ctx, log, fn, "start")

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

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.WithField("event", ev.Op.String()).Debug("snapshot changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.invoke(ctx, log, fn, "change")

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		}
	}
}

func (w *Watcher) invoke(ctx context.Context, log logrus.FieldLogger, fn func(context.Context) error, reason string) {
	if err := fn(ctx); err != nil {
		log.WithError(err).WithField("event", reason).Error("regeneration failed")
		return
	}
	log.WithField("event", reason).Info("regenerated")
}
