//go:build unit

package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/engine/store"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type memJournal struct {
	mu      sync.Mutex
	states  map[uuid.UUID]listing.State
	failing bool
}

func newMemJournal() *memJournal {
	return &memJournal{states: make(map[uuid.UUID]listing.State)}
}

func (j *memJournal) Append(_ context.Context, s listing.State) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.failing {
		return errors.New("disk full")
	}
	j.states[s.ID] = s
	return nil
}

func (j *memJournal) Delete(_ context.Context, id uuid.UUID) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.states, id)
	return nil
}

func (j *memJournal) all() []listing.State {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]listing.State, 0, len(j.states))
	for _, s := range j.states {
		out = append(out, s)
	}
	return out
}

type StoreTestSuite struct {
	suite.Suite
	clock   *clock.MockClock
	journal *memJournal
	store   *store.Store
	events  []store.Event
	mu      sync.Mutex
}

func (s *StoreTestSuite) SetupTest() {
	s.clock = clock.NewMockClock(builder.DefaultNow)
	s.journal = newMemJournal()
	s.events = nil
	s.store = store.New(store.Options{
		Shards:    4,
		MaxWindow: 24 * time.Hour,
		Journal:   s.journal,
		Clock:     s.clock,
	})
	s.store.Subscribe(func(ev store.Event) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.events = append(s.events, ev)
	})
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) create() *listing.Listing {
	l, err := s.store.Create(context.Background(), builder.NewListingBuilder().Params())
	s.Require().NoError(err)
	return l
}

func (s *StoreTestSuite) TestCreate() {
	s.Run("assigns id, version and emits added", func() {
		s.SetupTest()
		l := s.create()

		s.NotEqual(uuid.Nil, l.ID())
		s.Equal(uint64(1), l.Version())
		s.Equal(builder.DefaultNow, l.CreatedAt())

		got, err := s.store.Get(l.ID())
		s.Require().NoError(err)
		s.Same(l, got)

		s.Require().Len(s.events, 1)
		s.Equal(store.EventAdded, s.events[0].Kind)
		s.Equal(uint64(1), s.events[0].Seq)
		s.Len(s.journal.all(), 1)
	})

	s.Run("validation errors are not committed", func() {
		s.SetupTest()
		p := builder.NewListingBuilder().WithQuantity(0).Params()

		_, err := s.store.Create(context.Background(), p)
		s.ErrorIs(err, listing.ErrInvalidQuantity)
		s.Equal(0, s.store.Len())
		s.Empty(s.events)
	})

	s.Run("journal failure aborts the commit", func() {
		s.SetupTest()
		s.journal.failing = true

		_, err := s.store.Create(context.Background(), builder.NewListingBuilder().Params())
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrJournalWriteFailed))
		s.Equal(0, s.store.Len())
		s.Empty(s.events)
	})

	s.Run("cancelled context still commits", func() {
		s.SetupTest()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		l, err := s.store.Create(ctx, builder.NewListingBuilder().Params())
		s.Require().NoError(err)
		_, err = s.store.Get(l.ID())
		s.NoError(err)
	})
}

func (s *StoreTestSuite) TestGet_NotFound() {
	_, err := s.store.Get(uuid.New())
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *StoreTestSuite) TestApplyClaim() {
	s.Run("partial then final claim", func() {
		s.SetupTest()
		l := s.create()
		alice, bob := uuid.New(), uuid.New()

		first, err := s.store.ApplyClaim(context.Background(), l.ID(), alice, 3, s.clock.Now())
		s.Require().NoError(err)
		s.Equal(2, first.Remaining())

		second, err := s.store.ApplyClaim(context.Background(), l.ID(), bob, 2, s.clock.Now())
		s.Require().NoError(err)
		s.Equal(listing.StatusClaimed, second.Status())
		s.Equal(bob, second.ClaimedBy())

		kinds := make([]store.EventKind, 0, len(s.events))
		for _, ev := range s.events {
			kinds = append(kinds, ev.Kind)
		}
		s.Equal([]store.EventKind{store.EventAdded, store.EventUpdated, store.EventRemoved}, kinds)
		s.Equal(uint64(3), second.Version())
	})

	s.Run("rejection returns current listing unchanged", func() {
		s.SetupTest()
		l := s.create()

		cur, err := s.store.ApplyClaim(context.Background(), l.ID(), uuid.New(), 6, s.clock.Now())
		s.ErrorIs(err, listing.ErrInsufficientQuantity)
		s.Same(l, cur)
		s.Len(s.events, 1)
	})

	s.Run("unknown id", func() {
		s.SetupTest()
		_, err := s.store.ApplyClaim(context.Background(), uuid.New(), uuid.New(), 1, s.clock.Now())
		s.ErrorIs(err, store.ErrNotFound)
	})

	s.Run("past expiry is unavailable", func() {
		s.SetupTest()
		l := s.create()

		_, err := s.store.ApplyClaim(context.Background(), l.ID(), uuid.New(), 1, l.ExpiresAt())
		s.ErrorIs(err, listing.ErrListingUnavailable)
	})
}

func (s *StoreTestSuite) TestApplyExpiry_Idempotent() {
	l := s.create()
	at := l.ExpiresAt()

	expired, err := s.store.ApplyExpiry(context.Background(), l.ID(), at)
	s.Require().NoError(err)
	s.Equal(listing.StatusExpired, expired.Status())

	again, err := s.store.ApplyExpiry(context.Background(), l.ID(), at.Add(time.Second))
	s.ErrorIs(err, listing.ErrAlreadyTerminal)
	s.Same(expired, again)
	s.Len(s.events, 2)
}

func (s *StoreTestSuite) TestPruneTerminal() {
	active := s.create()
	done := s.create()
	_, err := s.store.ApplyClaim(context.Background(), done.ID(), uuid.New(), 5, s.clock.Now())
	s.Require().NoError(err)

	s.Equal(0, s.store.PruneTerminal(context.Background(), s.clock.Now()))
	s.Equal(0, s.store.PruneTerminal(context.Background(), s.clock.Now().Add(time.Second)), "unarchived listings are kept")

	final, err := s.store.Get(done.ID())
	s.Require().NoError(err)
	s.store.MarkArchived(done.ID(), final.Version()-1)
	s.Equal(0, s.store.PruneTerminal(context.Background(), s.clock.Now().Add(time.Second)), "an older archived version is not enough")

	s.store.MarkArchived(done.ID(), final.Version())
	n := s.store.PruneTerminal(context.Background(), s.clock.Now().Add(time.Second))
	s.Equal(1, n)
	_, err = s.store.Get(done.ID())
	s.ErrorIs(err, store.ErrNotFound)
	_, err = s.store.Get(active.ID())
	s.NoError(err)
	s.Len(s.journal.all(), 1)
}

func (s *StoreTestSuite) TestRestore() {
	l := s.create()
	_, err := s.store.ApplyClaim(context.Background(), l.ID(), uuid.New(), 2, s.clock.Now())
	s.Require().NoError(err)
	s.create()

	restored := store.New(store.Options{Shards: 2, Clock: s.clock})
	s.Require().NoError(restored.Restore(s.journal.all()))

	s.Equal(2, restored.Len())
	s.Equal(s.store.LastSeq(), restored.LastSeq())
	got, err := restored.Get(l.ID())
	s.Require().NoError(err)
	s.Equal(3, got.Remaining())

	next, err := restored.Create(context.Background(), builder.NewListingBuilder().Params())
	s.Require().NoError(err)
	s.Greater(next.Version(), s.store.LastSeq())
}

func TestStore_ConcurrentClaimsNeverOverAllocate(t *testing.T) {
	clk := clock.NewMockClock(builder.DefaultNow)
	st := store.New(store.Options{Shards: 4, Clock: clk})
	l, err := st.Create(context.Background(), builder.NewListingBuilder().WithQuantity(10).Params())
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	committed := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.ApplyClaim(context.Background(), l.ID(), uuid.New(), 1, clk.Now()); err == nil {
				mu.Lock()
				committed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := st.Get(l.ID())
	require.NoError(t, err)
	assert.Equal(t, 10, committed)
	assert.Equal(t, 0, got.Remaining())
	assert.Equal(t, listing.StatusClaimed, got.Status())
	assert.Len(t, got.Allocations(), 10)
}
