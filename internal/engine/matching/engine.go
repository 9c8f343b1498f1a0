// Package matching turns a user's position into an ordered list of
// claimable listings.
package matching

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"lastbite/internal/domain/listing"
	"lastbite/internal/engine/geoindex"
	"lastbite/internal/engine/store"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/geo"

	"github.com/google/uuid"
)

const (
	DefaultMaxRadiusMeters = 50000
	DefaultMaxResults      = 50
	MaxResultsCap          = 500

	ctxCheckEvery = 64
)

var (
	ErrInvalidRadius = errors.New("radius must be positive and not exceed the maximum")
	ErrInvalidLimit  = errors.New("max results must not be negative")
)

type Index interface {
	Insert(id uuid.UUID, p geo.Point) error
	Remove(id uuid.UUID) bool
	Query(center geo.Point, radiusMeters float64) []geoindex.Candidate
}

type Store interface {
	Get(id uuid.UUID) (*listing.Listing, error)
}

type Query struct {
	Point        geo.Point
	RadiusMeters float64
	Tags         []string // any-of; empty matches everything
	MaxResults   int      // 0 means the default limit
}

type Match struct {
	Listing        *listing.Listing
	DistanceMeters float64
	MatchedTags    []string
}

type Options struct {
	MaxRadiusMeters   float64
	DefaultMaxResults int
	Clock             clock.Clock
	Logger            *slog.Logger
}

type Engine struct {
	index        Index
	store        Store
	clock        clock.Clock
	maxRadius    float64
	defaultLimit int
	logger       *slog.Logger
}

func New(index Index, st Store, opts Options) *Engine {
	if opts.MaxRadiusMeters <= 0 {
		opts.MaxRadiusMeters = DefaultMaxRadiusMeters
	}
	if opts.DefaultMaxResults <= 0 {
		opts.DefaultMaxResults = DefaultMaxResults
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{
		index:        index,
		store:        st,
		clock:        opts.Clock,
		maxRadius:    opts.MaxRadiusMeters,
		defaultLimit: min(opts.DefaultMaxResults, MaxResultsCap),
		logger:       opts.Logger,
	}
}

// Search returns active, unexpired listings within the radius ordered by
// distance, then earlier expiry, then higher discount, then id.
func (e *Engine) Search(ctx context.Context, q Query) ([]Match, error) {
	if err := q.Point.Validate(); err != nil {
		return nil, err
	}
	if !(q.RadiusMeters > 0) || q.RadiusMeters > e.maxRadius {
		return nil, ErrInvalidRadius
	}
	if q.MaxResults < 0 {
		return nil, ErrInvalidLimit
	}
	filter, err := listing.NewTags(q.Tags)
	if err != nil {
		return nil, err
	}
	limit := q.MaxResults
	if limit == 0 {
		limit = e.defaultLimit
	}
	limit = min(limit, MaxResultsCap)

	now := e.clock.Now()
	candidates := e.index.Query(q.Point, q.RadiusMeters)

	matches := make([]Match, 0, len(candidates))
	stale := 0
	for i, c := range candidates {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		l, err := e.store.Get(c.ID)
		if err != nil || !l.IsActive() {
			// terminal or pruned: the index lags the store
			e.index.Remove(c.ID)
			stale++
			continue
		}
		if !l.IsAvailableAt(now) {
			continue
		}

		matched := []string{}
		if filter.Len() > 0 {
			matched = l.Tags().Intersect(filter)
			if len(matched) == 0 {
				continue
			}
		}
		matches = append(matches, Match{Listing: l, DistanceMeters: c.DistanceMeters, MatchedTags: matched})
	}
	if stale > 0 {
		e.logger.Debug("removed stale index entries", slog.Int("count", stale))
	}

	slices.SortFunc(matches, compareMatches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// OnEvent keeps the index in step with the store.
func (e *Engine) OnEvent(ev store.Event) {
	l := ev.Listing
	switch ev.Kind {
	case store.EventAdded:
		if err := e.index.Insert(l.ID(), l.Point()); err != nil {
			e.logger.Error("index insert failed",
				slog.String("listing_id", l.ID().String()),
				slog.String("error", err.Error()))
		}
	case store.EventRemoved:
		e.index.Remove(l.ID())
	}
}

func compareMatches(a, b Match) int {
	if c := cmp.Compare(a.DistanceMeters, b.DistanceMeters); c != 0 {
		return c
	}
	if c := a.Listing.ExpiresAt().Compare(b.Listing.ExpiresAt()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Listing.Discount().Percent(), a.Listing.Discount().Percent()); c != 0 {
		return c
	}
	ida, idb := a.Listing.ID(), b.Listing.ID()
	return bytes.Compare(ida[:], idb[:])
}
