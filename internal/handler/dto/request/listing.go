package request

import (
	"strings"
	"time"

	"lastbite/internal/usecase/commands"
	"lastbite/internal/usecase/queries"
)

// Shape only: range rules for window, quantity and discount belong to the
// domain and surface as 422.
type CreateListingRequest struct {
	Lat         *float64  `json:"lat" binding:"required,latitude"`
	Lon         *float64  `json:"lon" binding:"required,longitude"`
	Tags        []string  `json:"tags" binding:"omitempty,max=16,dive,listingtag"`
	Quantity    *int      `json:"quantity" binding:"required"`
	DiscountPct int       `json:"discount_pct"`
	ExpiresAt   time.Time `json:"expires_at" binding:"required"`
}

func (r *CreateListingRequest) ToCommand() commands.CreateListingRequest {
	return commands.CreateListingRequest{
		Lat:         *r.Lat,
		Lon:         *r.Lon,
		Tags:        r.Tags,
		Quantity:    *r.Quantity,
		DiscountPct: r.DiscountPct,
		ExpiresAt:   r.ExpiresAt,
	}
}

type ClaimListingRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type SearchListingsQuery struct {
	Lat    *float64 `form:"lat" binding:"required,latitude"`
	Lon    *float64 `form:"lon" binding:"required,longitude"`
	Radius float64  `form:"radius" binding:"required,gt=0"`
	Tags   []string `form:"tags" binding:"omitempty,max=16"`
	Limit  int      `form:"limit" binding:"omitempty,min=0,max=500"`
}

// ToQuery accepts both repeated tags parameters and comma separated lists.
func (q *SearchListingsQuery) ToQuery() queries.SearchRequest {
	var tags []string
	for _, raw := range q.Tags {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return queries.SearchRequest{
		Lat:          *q.Lat,
		Lon:          *q.Lon,
		RadiusMeters: q.Radius,
		Tags:         tags,
		MaxResults:   q.Limit,
	}
}

type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}
