// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ErrQueueFull is returned by Enqueue when the generation backlog is at
// capacity. Callers surface it as a retry-later condition.
var ErrQueueFull = errors.New("generation queue full")

// Runner processes generation requests in the background on a fixed pool
// of workers fed by a bounded queue.
type Runner struct {
	gen     *Generator
	queue   chan uuid.UUID
	workers int
	wg      sync.WaitGroup
}

// NewRunner sizes the pool and backlog. Both must be positive.
func NewRunner(gen *Generator, workers, backlog int) *Runner {
	return &Runner{
		gen:     gen,
		queue:   make(chan uuid.UUID, backlog),
		workers: workers,
	}
}

// Start launches the workers. They drain the queue until ctx is canceled;
// Wait blocks until all of them have exited.
func (r *Runner) Start(ctx context.Context) {
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case id := <-r.queue:
					if err := r.gen.Run(ctx, id); err != nil {
						slog.Error("background generation pass failed", "id", id, "error", err)
					}
				}
			}
		}()
	}
	slog.Info("generation runner started", "workers", r.workers, "backlog", cap(r.queue))
}

// Enqueue schedules a generation pass without blocking.
func (r *Runner) Enqueue(id uuid.UUID) error {
	select {
	case r.queue <- id:
		return nil
	default:
		return ErrQueueFull
	}
}

// Wait blocks until every worker has stopped.
func (r *Runner) Wait() {
	r.wg.Wait()
}
