package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/agenda/internal/domain/model"
)

func snapshot(title string) model.Buckets {
	return model.Buckets{"2025-01-01": {{ID: title, Title: title, Type: model.TypeWork, Priority: model.PriorityMedium}}}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	job := NewJob(snapshot("a"))
	if err := q.Enqueue(ctx, job); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got.Seq != job.Seq {
		t.Errorf("expected seq %d, got %d", job.Seq, got.Seq)
	}
	if got.Snapshot["2025-01-01"][0].Title != "a" {
		t.Errorf("unexpected snapshot %v", got.Snapshot)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if err := q.Enqueue(ctx, NewJob(nil)); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue(ctx, NewJob(nil)); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue(ctx, NewJob(nil)); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
	if q.Capacity() != 2 {
		t.Errorf("expected capacity 2, got %d", q.Capacity())
	}
}

func TestInMemoryQueue_Order(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	var want []uint64
	for i := 0; i < 5; i++ {
		j := NewJob(nil)
		want = append(want, j.Seq)
		if err := q.Enqueue(ctx, j); err != nil {
			t.Fatal(err)
		}
	}
	_ = q.Close()

	var got []uint64
	for j := range q.Dequeue(ctx) {
		got = append(got, j.Seq)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d jobs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected seq %d, got %d", i, want[i], got[i])
		}
		if i > 0 && got[i] <= got[i-1] {
			t.Errorf("sequence not increasing at %d", i)
		}
	}
}

func TestJob_DoneWait(t *testing.T) {
	j := NewJob(nil)
	boom := errors.New("boom")

	j.Done(boom)
	j.Done(nil) // ignored

	if err := j.Wait(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}

	pending := NewJob(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := pending.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if err := q.Enqueue(ctx, NewJob(nil)); err != nil {
		t.Fatal(err)
	}
	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}
	if err := q.Enqueue(ctx, NewJob(nil)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	ch := q.Dequeue(ctx)
	timeout := time.After(100 * time.Millisecond)
	drained := 0
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				if drained != 1 {
					t.Errorf("expected 1 drained job, got %d", drained)
				}
				if err := q.Close(); err != nil {
					t.Errorf("expected second close to succeed, got error: %v", err)
				}
				return
			}
			drained++
		case <-timeout:
			t.Fatal("expected dequeue channel to be closed within timeout")
		}
	}
}
