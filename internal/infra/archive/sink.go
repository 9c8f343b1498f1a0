package archive

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/engine/store"
)

const writeTimeout = 5 * time.Second

// Sink moves terminal listings from store events into an Archiver on its
// own goroutine. When the buffer is full the event is dropped and logged.
// Only successful writes to a durable archiver are confirmed, so a dropped
// or failed listing stays in the store and the journal.
type Sink struct {
	archiver Archiver
	ch       chan listing.State
	quit     chan struct{}
	wg       sync.WaitGroup
	logger   *slog.Logger
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64

	durable bool
	confirm func(listing.State)
}

func NewSink(a Archiver, buffer int, logger *slog.Logger) *Sink {
	if buffer <= 0 {
		buffer = 1
	}
	return &Sink{
		archiver: a,
		ch:       make(chan listing.State, buffer),
		quit:     make(chan struct{}),
		logger:   logger,
		durable:  !isNop(a),
	}
}

func isNop(a Archiver) bool {
	switch a.(type) {
	case Nop, *Nop:
		return true
	}
	return false
}

// OnArchived registers fn to be called after each successful write. It
// must be set before Start.
func (s *Sink) OnArchived(fn func(listing.State)) {
	s.confirm = fn
}

// OnEvent is a store.Listener; it never blocks.
func (s *Sink) OnEvent(ev store.Event) {
	if ev.Kind != store.EventRemoved {
		return
	}
	if !s.Enqueue(ev.Listing.State()) {
		s.logger.Warn("archive buffer full, dropping listing",
			slog.String("listing_id", ev.Listing.ID().String()),
			slog.Uint64("seq", ev.Seq))
	}
}

// Enqueue offers st for archiving and reports whether it was buffered.
func (s *Sink) Enqueue(st listing.State) bool {
	select {
	case s.ch <- st:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

func (s *Sink) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case st := <-s.ch:
				s.write(st)
			case <-s.quit:
				s.drain()
				return
			}
		}
	}()
}

// Stop flushes what is buffered, bounded by ctx.
func (s *Sink) Stop(ctx context.Context) error {
	close(s.quit)
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sink) Dropped() int64 { return s.dropped.Load() }
func (s *Sink) Written() int64 { return s.written.Load() }
func (s *Sink) Failed() int64  { return s.failed.Load() }

func (s *Sink) drain() {
	for {
		select {
		case st := <-s.ch:
			s.write(st)
		default:
			return
		}
	}
}

func (s *Sink) write(st listing.State) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.archiver.Archive(ctx, st); err != nil {
		s.failed.Add(1)
		s.logger.Error("archive write failed",
			slog.String("listing_id", st.ID.String()),
			slog.String("error", err.Error()))
		return
	}
	s.written.Add(1)
	if s.durable && s.confirm != nil {
		s.confirm(st)
	}
}
