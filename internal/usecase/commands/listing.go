package commands

import (
	"context"
	"errors"
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/engine/claim"
	"lastbite/internal/engine/store"
	"lastbite/internal/pkg/errs"
	"lastbite/internal/pkg/geo"

	"github.com/google/uuid"
)

//go:generate mockgen -source=listing.go -destination=../../testutil/mock/commands/listing_mock.go -package=mock_commands

var (
	ErrInvalidListing  = errs.New("invalid listing")
	ErrListingNotFound = errs.New("listing not found")
	ErrInvalidClaim    = errs.New("invalid claim")
	ErrClaimAborted    = errs.New("claim aborted before commit")
)

// ListingCreator admits new listings into the live store.
type ListingCreator interface {
	Create(ctx context.Context, p listing.NewParams) (*listing.Listing, error)
}

type ListingClaimer interface {
	Claim(ctx context.Context, a claim.Attempt) (claim.Result, error)
}

type CreateListingRequest struct {
	Lat         float64
	Lon         float64
	Tags        []string
	Quantity    int
	DiscountPct int
	ExpiresAt   time.Time
}

type CreateListingResult struct {
	ListingID uuid.UUID
	ExpiresAt time.Time
}

type ClaimListingRequest struct {
	ListingID uuid.UUID
	Quantity  int
}

// ClaimListingResult reports a commit or a business rejection. Remaining and
// Status describes the listing after the attempt.
type ClaimListingResult struct {
	Committed bool
	Reason    string
	Remaining int
	Status    string
}

type ListingCommands interface {
	CreateListing(ctx context.Context, req CreateListingRequest, producerID uuid.UUID) (*CreateListingResult, error)
	ClaimListing(ctx context.Context, req ClaimListingRequest, userID uuid.UUID) (*ClaimListingResult, error)
}

type listingUseCaseImpl struct {
	creator ListingCreator
	claimer ListingClaimer
}

func NewListingUseCase(creator ListingCreator, claimer ListingClaimer) ListingCommands {
	return &listingUseCaseImpl{creator: creator, claimer: claimer}
}

func (uc *listingUseCaseImpl) CreateListing(ctx context.Context, req CreateListingRequest, producerID uuid.UUID) (*CreateListingResult, error) {
	l, err := uc.creator.Create(ctx, listing.NewParams{
		ProducerID:  producerID,
		Point:       geo.Point{Lat: req.Lat, Lon: req.Lon},
		Tags:        req.Tags,
		Quantity:    req.Quantity,
		DiscountPct: req.DiscountPct,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		if isValidationErr(err) {
			return nil, errs.Mark(err, ErrInvalidListing)
		}
		return nil, errs.Wrap(err, "failed to create listing")
	}
	return &CreateListingResult{ListingID: l.ID(), ExpiresAt: l.ExpiresAt()}, nil
}

func (uc *listingUseCaseImpl) ClaimListing(ctx context.Context, req ClaimListingRequest, userID uuid.UUID) (*ClaimListingResult, error) {
	res, err := uc.claimer.Claim(ctx, claim.Attempt{
		ListingID: req.ListingID,
		UserID:    userID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrInvalidQuantity):
			return nil, errs.Mark(err, ErrInvalidClaim)
		case errors.Is(err, store.ErrNotFound):
			return nil, errs.Mark(err, ErrListingNotFound)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, errs.Mark(err, ErrClaimAborted)
		default:
			return nil, errs.Wrap(err, "failed to claim listing")
		}
	}

	out := &ClaimListingResult{
		Committed: res.Committed,
		Reason:    string(res.Reason),
	}
	if res.Listing != nil {
		out.Remaining = res.Listing.Remaining()
		out.Status = string(res.Listing.Status())
	}
	return out, nil
}

func isValidationErr(err error) bool {
	for _, target := range []error{
		listing.ErrInvalidWindow,
		listing.ErrInvalidQuantity,
		listing.ErrInvalidDiscount,
		listing.ErrInvalidTags,
		listing.ErrInvalidPoint,
		listing.ErrInvalidProducer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
