// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task performs one fetch. It may block and must be run off the event loop.
type Task func() Result

// Result is a completed fetch waiting to be published. Apply must run on the
// event loop; it reports whether the result was still current and therefore
// applied.
type Result interface {
	Apply() bool
}

// RunAll runs tasks concurrently, waits for all of them, then applies their
// results in task order on the calling goroutine.
func RunAll(tasks []Task) {
	results := make([]Result, len(tasks))
	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			results[i] = task()
			return nil
		})
	}
	g.Wait()
	for _, r := range results {
		if r != nil {
			r.Apply()
		}
	}
}

// slot tracks the fetch generation of one navigation key. Beginning a new
// generation cancels the previous one's context; results carry the
// generation they were started under and are dropped when it is stale.
// Callers hold the owning controller's lock.
type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

func (s *slot) begin(parent context.Context) (context.Context, uint64) {
	s.stop()
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, s.gen
}

// stop cancels in-flight work and invalidates its generation.
func (s *slot) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

func (s *slot) current(gen uint64) bool {
	return gen == s.gen
}
