//go:build unit || e2e

package builder

import (
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/pkg/geo"

	"github.com/google/uuid"
)

var DefaultNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type ListingBuilder struct {
	ID          uuid.UUID
	ProducerID  uuid.UUID
	Lat         float64
	Lon         float64
	Tags        []string
	Quantity    int
	DiscountPct int
	Now         time.Time
	ExpiresAt   time.Time
	MaxWindow   time.Duration
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		ID:          uuid.New(),
		ProducerID:  uuid.New(),
		Lat:         40.0,
		Lon:         -75.0,
		Tags:        []string{"bakery"},
		Quantity:    5,
		DiscountPct: 50,
		Now:         DefaultNow,
		ExpiresAt:   DefaultNow.Add(2 * time.Hour),
		MaxWindow:   24 * time.Hour,
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) Params() listing.NewParams {
	return listing.NewParams{
		ProducerID:  b.ProducerID,
		Point:       geo.Point{Lat: b.Lat, Lon: b.Lon},
		Tags:        b.Tags,
		Quantity:    b.Quantity,
		DiscountPct: b.DiscountPct,
		ExpiresAt:   b.ExpiresAt,
	}
}

func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	return listing.NewListing(b.ID, b.Params(), b.Now, b.MaxWindow)
}

// MustBuild panics on invalid input; only for fixtures known to be valid.
func (b *ListingBuilder) MustBuild() *listing.Listing {
	l, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return l
}

// Fluent builder methods
func (b *ListingBuilder) WithID(id uuid.UUID) *ListingBuilder {
	b.ID = id
	return b
}

func (b *ListingBuilder) WithProducer(id uuid.UUID) *ListingBuilder {
	b.ProducerID = id
	return b
}

func (b *ListingBuilder) WithPoint(lat, lon float64) *ListingBuilder {
	b.Lat = lat
	b.Lon = lon
	return b
}

func (b *ListingBuilder) WithTags(tags ...string) *ListingBuilder {
	b.Tags = tags
	return b
}

func (b *ListingBuilder) WithQuantity(q int) *ListingBuilder {
	b.Quantity = q
	return b
}

func (b *ListingBuilder) WithDiscount(pct int) *ListingBuilder {
	b.DiscountPct = pct
	return b
}

func (b *ListingBuilder) WithNow(now time.Time) *ListingBuilder {
	b.Now = now
	return b
}

func (b *ListingBuilder) ExpiringIn(d time.Duration) *ListingBuilder {
	b.ExpiresAt = b.Now.Add(d)
	return b
}
