// Package claim serializes claims against a listing so that concurrent
// claimers never over-allocate it and at most one of them takes the last
// unit.
package claim

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/engine/keylock"
	"lastbite/internal/pkg/clock"

	"github.com/google/uuid"
)

type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonInsufficientQuantity Reason = "insufficient_quantity"
	ReasonListingUnavailable   Reason = "listing_unavailable"
)

type Store interface {
	ApplyClaim(ctx context.Context, id, userID uuid.UUID, qty int, now time.Time) (*listing.Listing, error)
}

type Attempt struct {
	ListingID uuid.UUID
	UserID    uuid.UUID
	Quantity  int
}

// Result is a committed allocation or a business rejection. Listing is the
// state after the attempt.
type Result struct {
	Committed bool
	Reason    Reason
	Listing   *listing.Listing
}

type Coordinator struct {
	store  Store
	locks  *keylock.Locker
	clock  clock.Clock
	logger *slog.Logger
}

func NewCoordinator(st Store, locks *keylock.Locker, clk clock.Clock, logger *slog.Logger) *Coordinator {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{store: st, locks: locks, clock: clk, logger: logger}
}

// Claim returns a rejected Result (not an error) for insufficient quantity
// and unavailable listings. ctx only bounds the wait for the listing lock;
// once the lock is held the claim runs to completion.
func (c *Coordinator) Claim(ctx context.Context, a Attempt) (Result, error) {
	if a.Quantity <= 0 {
		return Result{}, listing.ErrInvalidQuantity
	}

	release, err := c.locks.Acquire(ctx, a.ListingID)
	if err != nil {
		return Result{}, err
	}
	defer release()

	l, err := c.store.ApplyClaim(context.WithoutCancel(ctx), a.ListingID, a.UserID, a.Quantity, c.clock.Now())
	switch {
	case err == nil:
		c.logger.Info("claim committed",
			slog.String("listing_id", a.ListingID.String()),
			slog.String("user_id", a.UserID.String()),
			slog.Int("quantity", a.Quantity),
			slog.Int("remaining", l.Remaining()))
		return Result{Committed: true, Listing: l}, nil
	case errors.Is(err, listing.ErrInsufficientQuantity):
		return Result{Reason: ReasonInsufficientQuantity, Listing: l}, nil
	case errors.Is(err, listing.ErrListingUnavailable):
		return Result{Reason: ReasonListingUnavailable, Listing: l}, nil
	default:
		return Result{}, err
	}
}

// Err maps a rejection reason back to its domain error.
func (r Result) Err() error {
	switch r.Reason {
	case ReasonInsufficientQuantity:
		return listing.ErrInsufficientQuantity
	case ReasonListingUnavailable:
		return listing.ErrListingUnavailable
	default:
		return nil
	}
}
