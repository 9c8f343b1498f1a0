// Package store is the authoritative in-memory record of listings.
//
// Readers load an immutable *listing.Listing through an atomic pointer and
// never block. Writers of one listing serialize on that listing's entry
// mutex; a committed change is journaled first, then published, then
// announced to listeners while the entry mutex is still held, so listeners
// observe the changes of one listing in commit order.
package store

import (
	"context"
	"encoding/binary"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/pkg/sequence"

	"github.com/google/uuid"
)

const DefaultShards = 64

var ErrNotFound = errors.New("listing not found")

// Journal persists listing state ahead of in-memory commits.
type Journal interface {
	Append(ctx context.Context, state listing.State) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventKind string

const (
	EventAdded   EventKind = "added"
	EventUpdated EventKind = "updated"
	EventRemoved EventKind = "removed"
)

// Event describes one committed transition. Removed is emitted when a
// listing reaches a terminal state.
type Event struct {
	Seq     uint64
	Kind    EventKind
	Listing *listing.Listing
}

// Listener is called synchronously on the committing goroutine and must not
// block or call back into the store for the same listing.
type Listener func(Event)

type Options struct {
	Shards    int
	MaxWindow time.Duration
	Journal   Journal
	Clock     clock.Clock
	Logger    *slog.Logger
}

type entry struct {
	mu  sync.Mutex
	cur atomic.Pointer[listing.Listing]
	// highest version confirmed by the archive
	archived atomic.Uint64
}

type shard struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
}

type Store struct {
	shards    []*shard
	seq       *sequence.Sequencer
	journal   Journal
	clock     clock.Clock
	maxWindow time.Duration
	logger    *slog.Logger

	listenersMu sync.RWMutex
	listeners   []Listener
}

func New(opts Options) *Store {
	n := opts.Shards
	if n <= 0 {
		n = DefaultShards
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Store{
		shards:    make([]*shard, n),
		seq:       sequence.New(0),
		journal:   opts.Journal,
		clock:     opts.Clock,
		maxWindow: opts.MaxWindow,
		logger:    opts.Logger,
	}
	for i := range n {
		s.shards[i] = &shard{entries: make(map[uuid.UUID]*entry)}
	}
	return s
}

func (s *Store) Subscribe(l Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Create validates p, assigns a fresh id and commits the listing.
func (s *Store) Create(ctx context.Context, p listing.NewParams) (*listing.Listing, error) {
	now := s.clock.Now()
	l, err := listing.NewListing(uuid.New(), p, now, s.maxWindow)
	if err != nil {
		return nil, err
	}

	e := &entry{}
	e.mu.Lock()
	defer e.mu.Unlock()

	committed, err := s.persist(ctx, l)
	if err != nil {
		return nil, err
	}
	e.cur.Store(committed)

	sh := s.shard(committed.ID())
	sh.mu.Lock()
	sh.entries[committed.ID()] = e
	sh.mu.Unlock()

	s.notify(Event{Seq: committed.Version(), Kind: EventAdded, Listing: committed})
	return committed, nil
}

func (s *Store) Get(id uuid.UUID) (*listing.Listing, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	return e.cur.Load(), nil
}

// ApplyClaim commits a claim of qty units for userID. On rejection the
// current listing is returned along with the domain error.
func (s *Store) ApplyClaim(ctx context.Context, id, userID uuid.UUID, qty int, now time.Time) (*listing.Listing, error) {
	return s.transition(ctx, id, func(cur *listing.Listing) (*listing.Listing, error) {
		return cur.Claim(userID, qty, now)
	})
}

// ApplyExpiry retires a due listing. listing.ErrAlreadyTerminal is returned
// with the unchanged listing when it already left the active state.
func (s *Store) ApplyExpiry(ctx context.Context, id uuid.UUID, now time.Time) (*listing.Listing, error) {
	return s.transition(ctx, id, func(cur *listing.Listing) (*listing.Listing, error) {
		return cur.Expire(now)
	})
}

func (s *Store) transition(ctx context.Context, id uuid.UUID, apply func(*listing.Listing) (*listing.Listing, error)) (*listing.Listing, error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.cur.Load()
	next, err := apply(cur)
	if err != nil {
		return cur, err
	}

	committed, err := s.persist(ctx, next)
	if err != nil {
		return cur, err
	}
	e.cur.Store(committed)

	kind := EventUpdated
	if committed.IsTerminal() {
		kind = EventRemoved
	}
	s.notify(Event{Seq: committed.Version(), Kind: kind, Listing: committed})
	return committed, nil
}

// Active returns every listing currently in the active state.
func (s *Store) Active() []*listing.Listing {
	return s.collect(func(l *listing.Listing) bool { return l.IsActive() })
}

// Snapshot returns every listing held in memory.
func (s *Store) Snapshot() []*listing.Listing {
	return s.collect(func(*listing.Listing) bool { return true })
}

func (s *Store) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}

// Restore loads persisted state without journaling or notifying. The
// sequencer is advanced past the highest restored version.
func (s *Store) Restore(states []listing.State) error {
	for _, st := range states {
		l, err := listing.Reconstruct(st)
		if err != nil {
			return errs.Wrapf(err, "restore listing %s", st.ID)
		}
		e := &entry{}
		e.cur.Store(l)

		sh := s.shard(l.ID())
		sh.mu.Lock()
		sh.entries[l.ID()] = e
		sh.mu.Unlock()

		s.seq.Advance(l.Version())
	}
	return nil
}

// MarkArchived records that version of id reached the archive. Only
// listings archived at their terminal version are eligible for pruning.
func (s *Store) MarkArchived(id uuid.UUID, version uint64) {
	e, ok := s.lookup(id)
	if !ok {
		return
	}
	for {
		cur := e.archived.Load()
		if version <= cur || e.archived.CompareAndSwap(cur, version) {
			return
		}
	}
}

// Terminal returns every claimed or expired listing still held in memory.
func (s *Store) Terminal() []*listing.Listing {
	return s.collect(func(l *listing.Listing) bool { return l.IsTerminal() })
}

// PruneTerminal drops terminal listings that left the active state before
// cutoff and whose terminal version the archive confirmed. It returns how
// many were removed; unconfirmed listings stay in memory and the journal.
func (s *Store) PruneTerminal(ctx context.Context, cutoff time.Time) int {
	pruned, retained := 0, 0
	for _, sh := range s.shards {
		var victims []uuid.UUID
		sh.mu.RLock()
		for id, e := range sh.entries {
			cur := e.cur.Load()
			at, ok := cur.TerminalAt()
			if !ok || !at.Before(cutoff) {
				continue
			}
			if e.archived.Load() < cur.Version() {
				retained++
				continue
			}
			victims = append(victims, id)
		}
		sh.mu.RUnlock()

		for _, id := range victims {
			if s.journal != nil {
				if err := s.journal.Delete(context.WithoutCancel(ctx), id); err != nil {
					s.logger.Warn("journal delete failed, keeping listing",
						slog.String("listing_id", id.String()),
						slog.String("error", err.Error()))
					continue
				}
			}
			sh.mu.Lock()
			delete(sh.entries, id)
			sh.mu.Unlock()
			pruned++
		}
	}
	if retained > 0 {
		s.logger.Debug("terminal listings kept until archived", slog.Int("count", retained))
	}
	return pruned
}

// LastSeq is the sequence of the most recent committed change.
func (s *Store) LastSeq() uint64 {
	return s.seq.Current()
}

func (s *Store) persist(ctx context.Context, l *listing.Listing) (*listing.Listing, error) {
	committed := l.WithVersion(s.seq.Next())
	if s.journal == nil {
		return committed, nil
	}
	if err := s.journal.Append(context.WithoutCancel(ctx), committed.State()); err != nil {
		s.logger.Error("journal append failed",
			slog.String("listing_id", l.ID().String()),
			slog.String("error", err.Error()))
		return nil, errs.Mark(errs.Wrap(err, "append listing"), errs.ErrJournalWriteFailed)
	}
	return committed, nil
}

func (s *Store) notify(ev Event) {
	s.listenersMu.RLock()
	defer s.listenersMu.RUnlock()
	for _, l := range s.listeners {
		l(ev)
	}
}

func (s *Store) collect(keep func(*listing.Listing) bool) []*listing.Listing {
	out := make([]*listing.Listing, 0)
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, e := range sh.entries {
			if l := e.cur.Load(); keep(l) {
				out = append(out, l)
			}
		}
		sh.mu.RUnlock()
	}
	return out
}

func (s *Store) lookup(id uuid.UUID) (*entry, bool) {
	sh := s.shard(id)
	sh.mu.RLock()
	e, ok := sh.entries[id]
	sh.mu.RUnlock()
	return e, ok
}

func (s *Store) shard(id uuid.UUID) *shard {
	h := binary.BigEndian.Uint64(id[8:])
	return s.shards[h%uint64(len(s.shards))]
}
