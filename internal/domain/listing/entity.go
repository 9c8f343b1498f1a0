package listing

import (
	"errors"
	"time"

	"lastbite/internal/pkg/geo"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow        = errors.New("expiry must be after now and within the allowed window")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidDiscount      = errors.New("discount must be between 0 and 100")
	ErrInvalidTags          = errors.New("invalid category tags")
	ErrInvalidPoint         = geo.ErrInvalidPoint
	ErrInvalidStatus        = errors.New("invalid listing status")
	ErrInvalidProducer      = errors.New("producer id is required")
	ErrInsufficientQuantity = errors.New("requested quantity exceeds remaining quantity")
	ErrListingUnavailable   = errors.New("listing is no longer available")
	ErrAlreadyTerminal      = errors.New("listing already left the active state")
	ErrNotYetDue            = errors.New("listing expiry has not been reached")
)

// Allocation is one committed claim against a listing.
type Allocation struct {
	UserID   uuid.UUID `json:"user_id"`
	Quantity int       `json:"quantity"`
	At       time.Time `json:"at"`
}

// Listing is a perishable offer. Values are never mutated once built:
// transitions return a new *Listing, so a published pointer can be read
// without locks.
type Listing struct {
	id          uuid.UUID
	producerID  uuid.UUID
	point       geo.Point
	tags        Tags
	quantity    int
	remaining   int
	discount    Discount
	createdAt   time.Time
	expiresAt   time.Time
	status      Status
	claimedBy   uuid.UUID
	claimedAt   time.Time
	expiredAt   time.Time
	allocations []Allocation
	version     uint64
}

type NewParams struct {
	ProducerID  uuid.UUID
	Point       geo.Point
	Tags        []string
	Quantity    int
	DiscountPct int
	ExpiresAt   time.Time
}

// NewListing validates params against now. maxWindow <= 0 disables the
// upper bound on the availability window.
func NewListing(id uuid.UUID, p NewParams, now time.Time, maxWindow time.Duration) (*Listing, error) {
	if p.ProducerID == uuid.Nil {
		return nil, ErrInvalidProducer
	}
	if err := p.Point.Validate(); err != nil {
		return nil, err
	}
	if !p.ExpiresAt.After(now) {
		return nil, ErrInvalidWindow
	}
	if maxWindow > 0 && p.ExpiresAt.Sub(now) > maxWindow {
		return nil, ErrInvalidWindow
	}
	if p.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	discount, err := NewDiscount(p.DiscountPct)
	if err != nil {
		return nil, err
	}
	tags, err := NewTags(p.Tags)
	if err != nil {
		return nil, err
	}

	return &Listing{
		id:         id,
		producerID: p.ProducerID,
		point:      p.Point,
		tags:       tags,
		quantity:   p.Quantity,
		remaining:  p.Quantity,
		discount:   discount,
		createdAt:  now,
		expiresAt:  p.ExpiresAt,
		status:     StatusActive,
	}, nil
}

// Claim allocates qty units to userID. A claim that would exceed the
// remaining quantity is rejected as a whole.
func (l *Listing) Claim(userID uuid.UUID, qty int, now time.Time) (*Listing, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !l.IsAvailableAt(now) {
		return nil, ErrListingUnavailable
	}
	if qty > l.remaining {
		return nil, ErrInsufficientQuantity
	}

	next := l.clone()
	next.remaining -= qty
	next.allocations = append(next.allocations, Allocation{UserID: userID, Quantity: qty, At: now})
	if next.remaining == 0 {
		next.status = StatusClaimed
		next.claimedBy = userID
		next.claimedAt = now
	}
	return next, nil
}

// Expire retires the listing. It never fires before the expiry timestamp.
func (l *Listing) Expire(now time.Time) (*Listing, error) {
	if l.status.IsTerminal() {
		return nil, ErrAlreadyTerminal
	}
	if now.Before(l.expiresAt) {
		return nil, ErrNotYetDue
	}

	next := l.clone()
	next.status = StatusExpired
	next.expiredAt = now
	return next, nil
}

func (l *Listing) WithVersion(v uint64) *Listing {
	next := l.clone()
	next.version = v
	return next
}

func (l *Listing) IsActive() bool {
	return l.status == StatusActive
}

func (l *Listing) IsTerminal() bool {
	return l.status.IsTerminal()
}

// IsAvailableAt reports whether the listing can be shown or claimed at now.
func (l *Listing) IsAvailableAt(now time.Time) bool {
	return l.status == StatusActive && now.Before(l.expiresAt)
}

// TerminalAt returns when the listing left the active state.
func (l *Listing) TerminalAt() (time.Time, bool) {
	switch l.status {
	case StatusClaimed:
		return l.claimedAt, true
	case StatusExpired:
		return l.expiredAt, true
	default:
		return time.Time{}, false
	}
}

func (l *Listing) ID() uuid.UUID         { return l.id }
func (l *Listing) ProducerID() uuid.UUID { return l.producerID }
func (l *Listing) Point() geo.Point      { return l.point }
func (l *Listing) Tags() Tags            { return l.tags }
func (l *Listing) Quantity() int         { return l.quantity }
func (l *Listing) Remaining() int        { return l.remaining }
func (l *Listing) Discount() Discount    { return l.discount }
func (l *Listing) CreatedAt() time.Time  { return l.createdAt }
func (l *Listing) ExpiresAt() time.Time  { return l.expiresAt }
func (l *Listing) Status() Status        { return l.status }
func (l *Listing) ClaimedBy() uuid.UUID  { return l.claimedBy }
func (l *Listing) ClaimedAt() time.Time  { return l.claimedAt }
func (l *Listing) ExpiredAt() time.Time  { return l.expiredAt }
func (l *Listing) Version() uint64       { return l.version }

func (l *Listing) Allocations() []Allocation {
	out := make([]Allocation, len(l.allocations))
	copy(out, l.allocations)
	return out
}

// Allocated is the total committed quantity.
func (l *Listing) Allocated() int {
	return l.quantity - l.remaining
}

func (l *Listing) clone() *Listing {
	next := *l
	next.allocations = make([]Allocation, len(l.allocations), len(l.allocations)+1)
	copy(next.allocations, l.allocations)
	return &next
}
