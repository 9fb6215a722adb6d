// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long a watched file must be quiet after a
// change before the change callback fires, absorbing editor
// write-rename bursts.
const WatchDebounce = 100 * time.Millisecond

// Watch watches a local graph document file and calls onChange after
// it is written, created, or replaced, debounced by [WatchDebounce].
// The parent directory is watched rather than the file itself so that
// editors that replace the file on save keep triggering. onChange is
// called from the watch goroutine; the watch stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		debounce := time.NewTimer(WatchDebounce)
		if !debounce.Stop() {
			<-debounce.C
		}
		defer debounce.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
					debounce.Reset(WatchDebounce)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Error("graph: watching document", "path", abs, "err", err)
			case <-debounce.C:
				onChange()
			}
		}
	}()
	return nil
}
