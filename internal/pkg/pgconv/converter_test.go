//go:build unit

package pgconv_test

import (
	"testing"
	"time"

	"lastbite/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestUUIDConversions(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, pgtype.UUID{Bytes: id, Valid: true}, pgconv.UUIDToPgtype(id))
	assert.False(t, pgconv.UUIDPtrToPgtype(nil).Valid)
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgtype.UUID{}))

	got := pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id))
	if assert.NotNil(t, got) {
		assert.Equal(t, id, *got)
	}
}

func TestTimeConversions(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	at := time.Date(2026, 3, 1, 21, 0, 0, 0, jst)

	assert.False(t, pgconv.TimePtrToPgtype(nil).Valid)
	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))

	got := pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(&at))
	if assert.NotNil(t, got) {
		assert.True(t, at.Equal(*got))
		assert.Equal(t, time.UTC, got.Location())
	}
	assert.Equal(t, time.UTC, pgconv.TimeFromPgtype(pgconv.TimeToPgtype(at)).Location())
}
