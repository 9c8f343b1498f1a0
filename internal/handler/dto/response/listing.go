package response

import (
	"time"

	"lastbite/internal/usecase/commands"
	"lastbite/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ListingResponse struct {
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
	Archived    bool       `json:"archived,omitempty"`
}

type SearchHitResponse struct {
	ID             uuid.UUID `json:"id"`
	Lat            float64   `json:"lat"`
	Lon            float64   `json:"lon"`
	Tags           []string  `json:"tags"`
	Quantity       int       `json:"quantity"`
	Remaining      int       `json:"remaining"`
	DiscountPct    int       `json:"discount_pct"`
	ExpiresAt      time.Time `json:"expires_at"`
	DistanceMeters float64   `json:"distance_meters"`
	MatchedTags    []string  `json:"matched_tags"`
}

type SearchResponse struct {
	Count   int                  `json:"count"`
	Results []*SearchHitResponse `json:"results"`
}

type ClaimResponse struct {
	Committed bool   `json:"committed"`
	Reason    string `json:"reason,omitempty"`
	Remaining int    `json:"remaining"`
	Status    string `json:"status,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Indexed   int    `json:"indexed"`
	Stored    int    `json:"stored"`
	Scheduled int    `json:"scheduled"`
	LastSeq   uint64 `json:"last_seq"`
}

func FromListingView(v *queries.ListingView) *ListingResponse {
	res := &ListingResponse{}
	_ = copier.Copy(res, v)
	return res
}

func FromListingViews(vs []*queries.ListingView) []*ListingResponse {
	res := make([]*ListingResponse, len(vs))
	for i, v := range vs {
		res[i] = FromListingView(v)
	}
	return res
}

func FromSearchHits(hits []*queries.SearchHit) *SearchResponse {
	res := &SearchResponse{Count: len(hits), Results: make([]*SearchHitResponse, len(hits))}
	for i, h := range hits {
		item := &SearchHitResponse{}
		_ = copier.Copy(item, h)
		res.Results[i] = item
	}
	return res
}

func FromClaimResult(r *commands.ClaimListingResult) *ClaimResponse {
	res := &ClaimResponse{}
	_ = copier.Copy(res, r)
	return res
}

func FromHealthView(v *queries.HealthView) *HealthResponse {
	res := &HealthResponse{Status: "ok"}
	_ = copier.Copy(res, v)
	return res
}
