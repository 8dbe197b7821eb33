// Package worker runs the single writer that persists store snapshots.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/agenda/internal/adapters/mq/queue"
	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/pkg/logger"
	"github.com/okian/agenda/pkg/metrics"
)

const defaultSaveTimeout = 5 * time.Second

// Saver writes a full snapshot to durable storage.
type Saver interface {
	Save(ctx context.Context, snapshot model.Buckets) error
}

// Queue defines how the worker receives jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker drains save jobs.
type Worker interface {
	// Run processes jobs until the queue is closed and drained or ctx ends.
	Run(ctx context.Context)
	// Shutdown waits for Run to return. The queue must be closed first.
	Shutdown(ctx context.Context) error
}

// SaveWorker applies jobs one at a time, in queue order.
type SaveWorker struct {
	queue       Queue
	saver       Saver
	name        string
	saveTimeout time.Duration

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewSaveWorker creates a new worker with configuration options.
func NewSaveWorker(q Queue, saver Saver, opts ...Option) *SaveWorker {
	w := &SaveWorker{
		queue:       q,
		saver:       saver,
		name:        "save-worker",
		saveTimeout: defaultSaveTimeout,
		shutdown:    make(chan struct{}),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *SaveWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, job)
		}
	}
}

// Shutdown waits for the loop to drain. When ctx ends first the loop is
// stopped and the remaining jobs are abandoned.
func (w *SaveWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.shutdownOnce.Do(func() { close(w.shutdown) })
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *SaveWorker) process(ctx context.Context, job queue.Job) {
	start := time.Now()

	saveCtx, cancel := context.WithTimeout(ctx, w.saveTimeout)
	defer cancel()

	err := w.saver.Save(saveCtx, job.Snapshot)
	if err != nil {
		metrics.RecordErrorByComponent("worker", "save_failed")
		metrics.RecordErrorLatency("worker", "save_failed", float64(time.Since(start).Milliseconds()))
		w.logger.Error(ctx, "save failed",
			logger.Any("seq", job.Seq),
			logger.Error(err),
		)
	} else {
		w.logger.Debug(ctx, "snapshot saved",
			logger.Any("seq", job.Seq),
			logger.Int("buckets", len(job.Snapshot)),
		)
	}
	job.Done(err)
}
