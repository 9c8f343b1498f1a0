//go:build unit || e2e

package archive_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func claimedState(t *testing.T, b *builder.ListingBuilder, version uint64) listing.State {
	t.Helper()
	l := b.MustBuild()
	claimed, err := l.Claim(uuid.New(), l.Quantity(), l.CreatedAt().Add(90*time.Second+123*time.Millisecond))
	require.NoError(t, err)
	return claimed.WithVersion(version).State()
}
