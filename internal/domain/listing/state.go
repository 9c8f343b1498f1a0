package listing

import (
	"time"

	"lastbite/internal/pkg/geo"

	"github.com/google/uuid"
)

// State is the flat, serializable form of a Listing used by the journal
// and the archive.
type State struct {
	ID          uuid.UUID    `json:"id"`
	ProducerID  uuid.UUID    `json:"producer_id"`
	Point       geo.Point    `json:"point"`
	Tags        []string     `json:"tags"`
	Quantity    int          `json:"quantity"`
	Remaining   int          `json:"remaining"`
	DiscountPct int          `json:"discount_pct"`
	CreatedAt   time.Time    `json:"created_at"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Status      Status       `json:"status"`
	ClaimedBy   *uuid.UUID   `json:"claimed_by,omitempty"`
	ClaimedAt   *time.Time   `json:"claimed_at,omitempty"`
	ExpiredAt   *time.Time   `json:"expired_at,omitempty"`
	Allocations []Allocation `json:"allocations,omitempty"`
	Version     uint64       `json:"version"`
}

func (l *Listing) State() State {
	s := State{
		ID:          l.id,
		ProducerID:  l.producerID,
		Point:       l.point,
		Tags:        l.tags.Values(),
		Quantity:    l.quantity,
		Remaining:   l.remaining,
		DiscountPct: l.discount.Percent(),
		CreatedAt:   l.createdAt,
		ExpiresAt:   l.expiresAt,
		Status:      l.status,
		Allocations: l.Allocations(),
		Version:     l.version,
	}
	if l.status == StatusClaimed {
		by, at := l.claimedBy, l.claimedAt
		s.ClaimedBy = &by
		s.ClaimedAt = &at
	}
	if l.status == StatusExpired {
		at := l.expiredAt
		s.ExpiredAt = &at
	}
	return s
}

// Reconstruct rebuilds a Listing from persisted state. Creation-time rules
// (window in the future) are not re-applied; structural invariants are.
func Reconstruct(s State) (*Listing, error) {
	if !s.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if err := s.Point.Validate(); err != nil {
		return nil, err
	}
	if s.Quantity <= 0 || s.Remaining < 0 || s.Remaining > s.Quantity {
		return nil, ErrInvalidQuantity
	}
	if !s.ExpiresAt.After(s.CreatedAt) {
		return nil, ErrInvalidWindow
	}
	discount, err := NewDiscount(s.DiscountPct)
	if err != nil {
		return nil, err
	}
	tags, err := NewTags(s.Tags)
	if err != nil {
		return nil, err
	}

	l := &Listing{
		id:          s.ID,
		producerID:  s.ProducerID,
		point:       s.Point,
		tags:        tags,
		quantity:    s.Quantity,
		remaining:   s.Remaining,
		discount:    discount,
		createdAt:   s.CreatedAt,
		expiresAt:   s.ExpiresAt,
		status:      s.Status,
		allocations: append([]Allocation(nil), s.Allocations...),
		version:     s.Version,
	}
	if s.ClaimedBy != nil {
		l.claimedBy = *s.ClaimedBy
	}
	if s.ClaimedAt != nil {
		l.claimedAt = *s.ClaimedAt
	}
	if s.ExpiredAt != nil {
		l.expiredAt = *s.ExpiredAt
	}
	return l, nil
}
