// Package queue carries save jobs from store mutations to the single writer.
//
// Jobs leave the queue in the order they were enqueued. Each job carries its
// own result channel so the mutation that produced it can wait for the write.
package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/pkg/metrics"
)

const defaultQueueCapacity = 64

var seq atomic.Uint64 //nolint:gochecknoglobals // process-wide job sequence

// Job is one pending save of a full store snapshot.
type Job struct {
	Seq      uint64
	Snapshot model.Buckets
	result   chan error
}

// NewJob wraps snapshot with a fresh sequence number.
func NewJob(snapshot model.Buckets) Job {
	return Job{
		Seq:      seq.Add(1),
		Snapshot: snapshot,
		result:   make(chan error, 1),
	}
}

// Done reports the outcome of the save. Only the first call has effect.
func (j Job) Done(err error) {
	select {
	case j.result <- err:
	default:
	}
}

// Wait blocks until the job is done or ctx ends.
func (j Job) Wait(ctx context.Context) error {
	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job. Returns ErrFull or ErrClosed when it was not queued.
	Enqueue(ctx context.Context, j Job) error
	// Dequeue returns a channel of jobs, closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Job
	Len(ctx context.Context) int
	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateSaveQueueCapacity(q.capacity)
	metrics.UpdateSaveQueueSize(0)
	return q
}

// Capacity returns the configured maximum.
func (q *InMemoryQueue) Capacity() int { return q.capacity }

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordSaveQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return ErrClosed
	}

	select {
	case q.jobs <- j:
		metrics.UpdateSaveQueueSize(len(q.jobs))
		return nil
	case <-ctx.Done():
		metrics.RecordSaveQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return ctx.Err()
	default:
		metrics.RecordSaveQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return ErrFull
	}
}

// Dequeue returns a channel that receives jobs as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for j := range q.jobs {
			select {
			case out <- j:
				metrics.UpdateSaveQueueSize(len(q.jobs))
			case <-ctx.Done():
				j.Done(ctx.Err())
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.jobs)
	metrics.UpdateSaveQueueSize(size)
	return size
}

// Close stops accepting jobs. Jobs already queued are still delivered.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
