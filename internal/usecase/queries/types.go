package queries

import (
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/engine/matching"

	"github.com/google/uuid"
)

// ListingView represents read-optimized listing data
type ListingView struct {
	ID          uuid.UUID  `json:"id"`
	ProducerID  uuid.UUID  `json:"producer_id"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Tags        []string   `json:"tags"`
	Quantity    int        `json:"quantity"`
	Remaining   int        `json:"remaining"`
	DiscountPct int        `json:"discount_pct"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	ClaimedBy   *uuid.UUID `json:"claimed_by,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	ExpiredAt   *time.Time `json:"expired_at,omitempty"`
	Version     uint64     `json:"version"`
	Archived    bool       `json:"archived"`
}

// SearchHit is one ranked search result
type SearchHit struct {
	ListingView
	DistanceMeters float64  `json:"distance_meters"`
	MatchedTags    []string `json:"matched_tags"`
}

// HealthView summarizes engine occupancy
type HealthView struct {
	Indexed   int    `json:"indexed"`
	Stored    int    `json:"stored"`
	Scheduled int    `json:"scheduled"`
	LastSeq   uint64 `json:"last_seq"`
}

func NewListingView(l *listing.Listing) *ListingView {
	return ListingViewFromState(l.State())
}

func ListingViewFromState(s listing.State) *ListingView {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return &ListingView{
		ID:          s.ID,
		ProducerID:  s.ProducerID,
		Lat:         s.Point.Lat,
		Lon:         s.Point.Lon,
		Tags:        tags,
		Quantity:    s.Quantity,
		Remaining:   s.Remaining,
		DiscountPct: s.DiscountPct,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		ExpiresAt:   s.ExpiresAt,
		ClaimedBy:   s.ClaimedBy,
		ClaimedAt:   s.ClaimedAt,
		ExpiredAt:   s.ExpiredAt,
		Version:     s.Version,
	}
}

func newSearchHit(m matching.Match) *SearchHit {
	matched := m.MatchedTags
	if matched == nil {
		matched = []string{}
	}
	return &SearchHit{
		ListingView:    *NewListingView(m.Listing),
		DistanceMeters: m.DistanceMeters,
		MatchedTags:    matched,
	}
}
