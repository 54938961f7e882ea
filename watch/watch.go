// Package watch re-renders a chord sheet while it is being edited.
package watch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/chordshift/logging"
)

type Options struct {
	// Interval between polls of the file's size and modification time
	Interval time.Duration
	// Quiet is how long the file must stay unchanged before onChange runs;
	// editors often write a file several times per save
	Quiet time.Duration
}

type stamp struct {
	mod  time.Time
	size int64
}

func (s stamp) equal(o stamp) bool {
	return s.size == o.size && s.mod.Equal(o.mod)
}

func stat(path string) (stamp, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return stamp{}, err
	}
	return stamp{mod: fi.ModTime(), size: fi.Size()}, nil
}

// Run calls onChange once right away and then after every settled change to
// path, until ctx is done. Calls to onChange never overlap.
func Run(ctx context.Context, path string, opts Options, onChange func()) error {
	last, err := stat(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	var mu sync.Mutex
	run := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		onChange()
	}
	run()

	debounced := debounce.New(opts.Quiet)
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cur, err := stat(path)
			if err != nil {
				logging.Warn("watch_stat_failed", "path", path, "error", err)
				continue
			}
			if !cur.equal(last) {
				last = cur
				logging.Debug("watch_change", "path", path, "size", cur.size)
				debounced(run)
			}
		}
	}
}
