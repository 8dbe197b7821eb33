// Package service provides the calendar engine's command handlers used by
// the presentation adapters.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/agenda/internal/adapters/blob"
	savequeue "github.com/okian/agenda/internal/adapters/mq/queue"
	saveworker "github.com/okian/agenda/internal/adapters/mq/worker"
	"github.com/okian/agenda/internal/adapters/repository"
	"github.com/okian/agenda/internal/domain/calendar"
	"github.com/okian/agenda/internal/domain/holiday"
	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/pkg/logger"
	"github.com/okian/agenda/pkg/metrics"
)

const (
	defaultQueueSize   = 64
	defaultSaveTimeout = 5 * time.Second
	stopTimeout        = 10 * time.Second
)

// SaveWarning is reported when a mutation was applied in memory but could
// not be written.
const SaveWarning = "Error al guardar los eventos. Por favor, intenta de nuevo."

// Service wires the event store, the holiday cache and the grid builder.
type Service struct {
	mu sync.RWMutex
	// writeMu orders mutations and their save jobs.
	writeMu sync.Mutex

	blob     blob.Store
	store    *repository.EventStore
	holidays *holiday.Cache
	builder  *calendar.Builder
	queue    *savequeue.InMemoryQueue
	writer   *saveworker.SaveWorker
	cancel   context.CancelFunc

	storeKey    string
	queueSize   int
	saveTimeout time.Duration
	regional    bool
	goodFriday  map[int]model.DateKey
	now         func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs a Service. The store is empty until Start loads it.
func New(opts ...Option) *Service {
	s := &Service{
		storeKey:    repository.DefaultKey,
		queueSize:   defaultQueueSize,
		saveTimeout: defaultSaveTimeout,
		regional:    true,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.blob == nil {
		s.blob = blob.NewMemoryStore()
	}

	s.store = repository.NewEventStore(s.blob,
		repository.WithKey(s.storeKey),
		repository.WithLogger(s.logger.Named("repository")),
	)
	s.holidays = holiday.NewCache(holiday.New(
		holiday.WithRegional(s.regional),
		holiday.WithGoodFridayOverrides(s.goodFriday),
	))
	s.builder = calendar.NewBuilder(calendar.WithClock(s.now))
	return s
}

// Start loads persisted events and starts the save writer.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting calendar service...")

	loaded := s.store.Load(ctx)

	s.queue = savequeue.NewInMemoryQueue(savequeue.WithCapacity(s.queueSize))
	s.writer = saveworker.NewSaveWorker(s.queue, s.store,
		saveworker.WithLogger(s.logger.Named("save-worker")),
		saveworker.WithSaveTimeout(s.saveTimeout),
	)
	// The writer outlives ctx so queued saves are flushed by Stop.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	go s.writer.Run(runCtx)

	s.started = true
	s.logger.Info(ctx, "calendar service started",
		logger.String("storeKey", s.store.Key()),
		logger.Int("buckets", len(loaded)),
		logger.Int("events", loaded.Count()),
		logger.Int("queueSize", s.queueSize),
		logger.Bool("regional", s.regional),
	)
	return nil
}

// Stop flushes pending saves and releases the blob store.
func (s *Service) Stop() {
	// Same lock order as apply: writeMu, then mu.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping calendar service...")

	_ = s.queue.Close()

	sctx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	if err := s.writer.Shutdown(sctx); err != nil {
		s.logger.Error(ctx, "save writer did not drain", logger.Error(err))
	}
	s.cancel()

	if err := s.blob.Close(); err != nil {
		s.logger.Error(ctx, "closing blob store failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "calendar service stopped")
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// apply runs mutate under the write lock and persists the resulting snapshot.
// It returns SaveWarning when the snapshot could not be written; the
// in-memory change is kept either way.
func (s *Service) apply(ctx context.Context, mutate func() bool) (warning string) {
	s.writeMu.Lock()
	if !mutate() {
		s.writeMu.Unlock()
		return ""
	}
	snapshot := s.store.Snapshot()

	if !s.isStarted() {
		// No writer yet: save inline, still ordered by writeMu.
		err := s.store.Save(ctx, snapshot)
		s.writeMu.Unlock()
		return s.saveOutcome(ctx, err)
	}

	job := savequeue.NewJob(snapshot)
	err := s.queue.Enqueue(ctx, job)
	s.writeMu.Unlock()
	if err != nil {
		return s.saveOutcome(ctx, fmt.Errorf("%w: enqueue save: %w", repository.ErrPersistence, err))
	}

	wctx, cancel := context.WithTimeout(ctx, s.saveTimeout)
	defer cancel()
	return s.saveOutcome(ctx, job.Wait(wctx))
}

func (s *Service) saveOutcome(ctx context.Context, err error) string {
	if err == nil {
		return ""
	}
	metrics.RecordErrorByType("persistence", "warning")
	s.logger.Error(ctx, "saving events failed; change kept in memory", logger.Error(err))
	return SaveWarning
}

// Grid builds the month grid of anchor with the holidays of its year.
func (s *Service) Grid(_ context.Context, anchor calendar.Anchor) calendar.Grid {
	return s.builder.Build(anchor, s.store, s.holidays.For(anchor.Year()))
}

// Today returns the host's current date.
func (s *Service) Today() model.Date {
	return s.builder.Today()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":   s.started,
		"storeKey":  s.storeKey,
		"queueSize": s.queueSize,
		"regional":  s.regional,
		"buckets":   len(s.store.Keys()),
		"events":    s.store.Count(),
	}
	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		metrics.UpdateSaveQueueSize(queueLen)
	}
	return stats
}
