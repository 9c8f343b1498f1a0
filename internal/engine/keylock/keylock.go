// Package keylock provides per-listing mutual exclusion. Claims and the
// expiry sweep for the same listing serialize here; different listings
// never contend.
package keylock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	ch   chan struct{}
	refs int
}

type Locker struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

func New() *Locker {
	return &Locker{entries: make(map[uuid.UUID]*entry)}
}

// Acquire blocks until the lock for id is held or ctx is done. The returned
// release func must be called exactly once.
func (l *Locker) Acquire(ctx context.Context, id uuid.UUID) (func(), error) {
	e := l.ref(id)
	select {
	case e.ch <- struct{}{}:
		return l.releaser(id, e), nil
	case <-ctx.Done():
		l.unref(id, e)
		return nil, ctx.Err()
	}
}

// TryAcquireFor waits at most wait for the lock and reports whether it was
// taken.
func (l *Locker) TryAcquireFor(id uuid.UUID, wait time.Duration) (func(), bool) {
	e := l.ref(id)
	select {
	case e.ch <- struct{}{}:
		return l.releaser(id, e), true
	default:
	}
	if wait <= 0 {
		l.unref(id, e)
		return nil, false
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case e.ch <- struct{}{}:
		return l.releaser(id, e), true
	case <-timer.C:
		l.unref(id, e)
		return nil, false
	}
}

// Len is the number of ids with a holder or waiter.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Locker) releaser(id uuid.UUID, e *entry) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.unref(id, e)
		})
	}
}

func (l *Locker) ref(id uuid.UUID) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[id]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[id] = e
	}
	e.refs++
	return e
}

func (l *Locker) unref(id uuid.UUID, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, id)
	}
}
