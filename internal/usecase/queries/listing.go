package queries

import (
	"context"
	"errors"

	"lastbite/internal/domain/listing"
	"lastbite/internal/engine/matching"
	"lastbite/internal/engine/store"
	"lastbite/internal/infra"
	"lastbite/internal/infra/archive"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/pkg/geo"

	"github.com/google/uuid"
)

//go:generate mockgen -source=listing.go -destination=../../testutil/mock/queries/listing_mock.go -package=mock_queries

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

var (
	ErrListingNotFound = errs.New("listing not found")
	ErrInvalidQuery    = errs.New("invalid search query")
)

// ListingReader is the live store.
type ListingReader interface {
	Get(id uuid.UUID) (*listing.Listing, error)
	Len() int
	LastSeq() uint64
}

type ListingSearcher interface {
	Search(ctx context.Context, q matching.Query) ([]matching.Match, error)
}

// ListingArchive serves listings that were pruned from memory.
type ListingArchive interface {
	Get(ctx context.Context, id uuid.UUID) (listing.State, error)
	History(ctx context.Context, producerID uuid.UUID, limit int) ([]listing.State, error)
}

// EngineStats reports sizes of the in-memory structures.
type EngineStats interface {
	IndexedCount() int
	ScheduledCount() int
}

type SearchRequest struct {
	Lat          float64
	Lon          float64
	RadiusMeters float64
	Tags         []string
	MaxResults   int
}

type ListingQueries interface {
	GetListing(ctx context.Context, id uuid.UUID) (*ListingView, error)
	Search(ctx context.Context, req SearchRequest) ([]*SearchHit, error)
	History(ctx context.Context, producerID uuid.UUID, limit int) ([]*ListingView, error)
	Health(ctx context.Context) *HealthView
}

type listingQueriesImpl struct {
	reader   ListingReader
	searcher ListingSearcher
	archive  ListingArchive
	stats    EngineStats
}

func NewListingQueries(reader ListingReader, searcher ListingSearcher, arch ListingArchive, stats EngineStats) ListingQueries {
	return &listingQueriesImpl{reader: reader, searcher: searcher, archive: arch, stats: stats}
}

// GetListing falls back to the archive for listings pruned after retention.
func (q *listingQueriesImpl) GetListing(ctx context.Context, id uuid.UUID) (*ListingView, error) {
	l, err := q.reader.Get(id)
	if err == nil {
		return NewListingView(l), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	st, err := q.archive.Get(ctx, id)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) || infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrListingNotFound)
		}
		return nil, errs.Mark(errs.Wrap(err, "failed to load archived listing"), errs.ErrArchiveFailed)
	}
	view := ListingViewFromState(st)
	view.Archived = true
	return view, nil
}

func (q *listingQueriesImpl) Search(ctx context.Context, req SearchRequest) ([]*SearchHit, error) {
	matches, err := q.searcher.Search(ctx, matching.Query{
		Point:        geo.Point{Lat: req.Lat, Lon: req.Lon},
		RadiusMeters: req.RadiusMeters,
		Tags:         req.Tags,
		MaxResults:   req.MaxResults,
	})
	if err != nil {
		if isInvalidQuery(err) {
			return nil, errs.Mark(err, ErrInvalidQuery)
		}
		return nil, err
	}

	hits := make([]*SearchHit, len(matches))
	for i, m := range matches {
		hits[i] = newSearchHit(m)
	}
	return hits, nil
}

func (q *listingQueriesImpl) History(ctx context.Context, producerID uuid.UUID, limit int) ([]*ListingView, error) {
	states, err := q.archive.History(ctx, producerID, ValidateLimit(limit))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to load producer history"), errs.ErrArchiveFailed)
	}
	views := make([]*ListingView, len(states))
	for i, s := range states {
		views[i] = ListingViewFromState(s)
		views[i].Archived = true
	}
	return views, nil
}

func (q *listingQueriesImpl) Health(_ context.Context) *HealthView {
	return &HealthView{
		Indexed:   q.stats.IndexedCount(),
		Stored:    q.reader.Len(),
		Scheduled: q.stats.ScheduledCount(),
		LastSeq:   q.reader.LastSeq(),
	}
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

func isInvalidQuery(err error) bool {
	return errors.Is(err, geo.ErrInvalidPoint) ||
		errors.Is(err, matching.ErrInvalidRadius) ||
		errors.Is(err, matching.ErrInvalidLimit) ||
		errors.Is(err, listing.ErrInvalidTags)
}
