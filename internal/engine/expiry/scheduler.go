// Package expiry retires listings once their availability window has
// elapsed, independently of any search traffic.
package expiry

import (
	"container/heap"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/engine/keylock"
	"lastbite/internal/engine/store"
	"lastbite/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	DefaultInterval = time.Second
	DefaultLockWait = 50 * time.Millisecond
)

type Store interface {
	ApplyExpiry(ctx context.Context, id uuid.UUID, now time.Time) (*listing.Listing, error)
	PruneTerminal(ctx context.Context, cutoff time.Time) int
}

type Options struct {
	Interval  time.Duration
	LockWait  time.Duration
	Retention time.Duration // 0 disables pruning
	Clock     clock.Clock
	Logger    *slog.Logger
}

type TickReport struct {
	Expired int
	Skipped int
	Retried int
	Pruned  int
}

type Scheduler struct {
	store     Store
	locks     *keylock.Locker
	clock     clock.Clock
	interval  time.Duration
	lockWait  time.Duration
	retention time.Duration
	logger    *slog.Logger

	mu    sync.Mutex
	queue expiryHeap

	cancel context.CancelFunc
	done   chan struct{}
}

func New(st Store, locks *keylock.Locker, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.LockWait <= 0 {
		opts.LockWait = DefaultLockWait
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scheduler{
		store:     st,
		locks:     locks,
		clock:     opts.Clock,
		interval:  opts.Interval,
		lockWait:  opts.LockWait,
		retention: opts.Retention,
		logger:    opts.Logger,
	}
}

func (s *Scheduler) Schedule(id uuid.UUID, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	heap.Push(&s.queue, item{id: id, expiresAt: expiresAt})
}

// OnEvent is a store.Listener scheduling every newly added listing.
func (s *Scheduler) OnEvent(ev store.Event) {
	if ev.Kind == store.EventAdded {
		s.Schedule(ev.Listing.ID(), ev.Listing.ExpiresAt())
	}
}

// Rebuild replaces the queue with the given active listings.
func (s *Scheduler) Rebuild(active []*listing.Listing) {
	q := make(expiryHeap, 0, len(active))
	for _, l := range active {
		if l.IsActive() {
			q = append(q, item{id: l.ID(), expiresAt: l.ExpiresAt()})
		}
	}
	heap.Init(&q)

	s.mu.Lock()
	s.queue = q
	s.mu.Unlock()
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// NextDue returns the earliest scheduled expiry.
func (s *Scheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.queue.peek()
	return it.expiresAt, ok
}

// Tick expires every listing due at now. A listing whose lock is busy for
// longer than the lock wait is retried on the next tick.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) TickReport {
	var report TickReport

	due := s.popDue(now)
	var retry []item
	for _, it := range due {
		release, ok := s.locks.TryAcquireFor(it.id, s.lockWait)
		if !ok {
			retry = append(retry, it)
			report.Retried++
			continue
		}
		_, err := s.store.ApplyExpiry(ctx, it.id, now)
		release()

		switch {
		case err == nil:
			report.Expired++
		case errors.Is(err, listing.ErrAlreadyTerminal), errors.Is(err, store.ErrNotFound):
			report.Skipped++
			s.logger.Debug("expiry skipped",
				slog.String("listing_id", it.id.String()),
				slog.String("reason", err.Error()))
		default:
			retry = append(retry, it)
			report.Retried++
			s.logger.Error("expiry failed",
				slog.String("listing_id", it.id.String()),
				slog.String("error", err.Error()))
		}
	}

	if len(retry) > 0 {
		s.mu.Lock()
		for _, it := range retry {
			heap.Push(&s.queue, it)
		}
		s.mu.Unlock()
	}

	if s.retention > 0 {
		report.Pruned = s.store.PruneTerminal(ctx, now.Add(-s.retention))
	}
	return report
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r := s.Tick(ctx, s.clock.Now())
			if r.Expired > 0 || r.Pruned > 0 || r.Retried > 0 {
				s.logger.Info("expiry tick",
					slog.Int("expired", r.Expired),
					slog.Int("skipped", r.Skipped),
					slog.Int("retried", r.Retried),
					slog.Int("pruned", r.Pruned))
			}
		}
	}
}

func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		s.Run(ctx)
	}()
	s.logger.Info("expiry scheduler started", slog.Duration("interval", s.interval))
}

func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) popDue(now time.Time) []item {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []item
	for {
		it, ok := s.queue.peek()
		if !ok || it.expiresAt.After(now) {
			return due
		}
		due = append(due, heap.Pop(&s.queue).(item))
	}
}
