// Package engine assembles the geo-index, the listing store, the expiry
// scheduler, the matching engine and the claim coordinator into one unit
// sharing a clock and a lock table.
package engine

import (
	"context"
	"log/slog"

	"lastbite/internal/domain/listing"
	"lastbite/internal/engine/claim"
	"lastbite/internal/engine/expiry"
	"lastbite/internal/engine/geoindex"
	"lastbite/internal/engine/keylock"
	"lastbite/internal/engine/matching"
	"lastbite/internal/engine/store"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/config"
	"lastbite/internal/pkg/errs"
)

type Engine struct {
	Index       *geoindex.Index
	Store       *store.Store
	Matcher     *matching.Engine
	Scheduler   *expiry.Scheduler
	Coordinator *claim.Coordinator

	logger *slog.Logger
}

// New wires the components; journal may be nil. The index and the
// scheduler are subscribed to the store before anything else.
func New(cfg config.EngineConfig, journal store.Journal, clk clock.Clock, logger *slog.Logger) *Engine {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	st := store.New(store.Options{
		Shards:    cfg.StoreShards,
		MaxWindow: cfg.MaxWindow,
		Journal:   journal,
		Clock:     clk,
		Logger:    logger,
	})

	locks := keylock.New()
	idx := geoindex.New(cfg.CellSizeMeters, cfg.StoreShards)
	matcher := matching.New(idx, st, matching.Options{
		MaxRadiusMeters:   cfg.MaxRadiusMeters,
		DefaultMaxResults: cfg.DefaultMaxResults,
		Clock:             clk,
		Logger:            logger,
	})
	sched := expiry.New(st, locks, expiry.Options{
		Interval:  cfg.ExpiryInterval,
		LockWait:  cfg.ExpiryLockWait,
		Retention: cfg.Retention,
		Clock:     clk,
		Logger:    logger,
	})

	st.Subscribe(matcher.OnEvent)
	st.Subscribe(sched.OnEvent)

	return &Engine{
		Index:       idx,
		Store:       st,
		Matcher:     matcher,
		Scheduler:   sched,
		Coordinator: claim.NewCoordinator(st, locks, clk, logger),
		logger:      logger,
	}
}

func (e *Engine) Subscribe(l store.Listener) {
	e.Store.Subscribe(l)
}

// Restore loads journaled state and rebuilds the derived structures from
// the active listings. Listings already past their expiry are retired by
// the first scheduler tick.
func (e *Engine) Restore(states []listing.State) error {
	if err := e.Store.Restore(states); err != nil {
		return err
	}
	active := e.Store.Active()
	entries := make([]geoindex.Entry, 0, len(active))
	for _, l := range active {
		entries = append(entries, geoindex.Entry{ID: l.ID(), Point: l.Point()})
	}
	if err := e.Index.Rebuild(entries); err != nil {
		return errs.Wrap(err, "rebuild geo index")
	}
	e.Scheduler.Rebuild(active)

	e.logger.Info("engine restored",
		slog.Int("listings", len(states)),
		slog.Int("active", len(active)),
		slog.Uint64("seq", e.Store.LastSeq()))
	return nil
}

// ConfirmArchived marks st as stored by the archive, which makes the
// listing eligible for retention pruning.
func (e *Engine) ConfirmArchived(st listing.State) {
	e.Store.MarkArchived(st.ID, st.Version)
}

// ResubmitTerminal offers every terminal listing to enqueue and returns how
// many were accepted.
func (e *Engine) ResubmitTerminal(enqueue func(listing.State) bool) int {
	n := 0
	for _, l := range e.Store.Terminal() {
		if enqueue(l.State()) {
			n++
		}
	}
	return n
}

func (e *Engine) Start() {
	e.Scheduler.Start()
}

func (e *Engine) Stop(ctx context.Context) error {
	return e.Scheduler.Stop(ctx)
}

func (e *Engine) IndexedCount() int {
	return e.Index.Len()
}

func (e *Engine) ScheduledCount() int {
	return e.Scheduler.Len()
}
