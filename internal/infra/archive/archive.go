// Package archive keeps the audit history of listings that left the active
// state. It is fed asynchronously from store events and serves lookups for
// listings already pruned from memory.
package archive

import (
	"context"
	"errors"

	"lastbite/internal/domain/listing"

	"github.com/google/uuid"
)

const DefaultHistoryLimit = 50

var ErrNotFound = errors.New("listing not archived")

type Archiver interface {
	// Archive upserts s; an older version never overwrites a newer one.
	Archive(ctx context.Context, s listing.State) error
	Get(ctx context.Context, id uuid.UUID) (listing.State, error)
	// History returns the producer's listings, newest first.
	History(ctx context.Context, producerID uuid.UUID, limit int) ([]listing.State, error)
	Close() error
}

// Nop is used when archiving is disabled.
type Nop struct{}

func (Nop) Archive(context.Context, listing.State) error { return nil }

func (Nop) Get(context.Context, uuid.UUID) (listing.State, error) {
	return listing.State{}, ErrNotFound
}

func (Nop) History(context.Context, uuid.UUID, int) ([]listing.State, error) {
	return []listing.State{}, nil
}

func (Nop) Close() error { return nil }

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return DefaultHistoryLimit
	}
	return limit
}
