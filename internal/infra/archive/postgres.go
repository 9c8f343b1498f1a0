package archive

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"lastbite/internal/domain/listing"
	"lastbite/internal/infra"
	"lastbite/internal/pkg/geo"
	"lastbite/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresArchive struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) *PostgresArchive {
	return &PostgresArchive{pool: pool, logger: logger}
}

// Close is a no-op; the pool belongs to its provider.
func (a *PostgresArchive) Close() error {
	return nil
}

func (a *PostgresArchive) Archive(ctx context.Context, s listing.State) error {
	allocations, err := json.Marshal(s.Allocations)
	if err != nil {
		return infra.WrapStorageErr(a.logger, infra.KindDBFailure, "encode allocations", err)
	}
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err = a.pool.Exec(ctx, `
INSERT INTO listing_archive (
	id, producer_id, lat, lon, tags, quantity, remaining, discount_pct, status,
	created_at, expires_at, claimed_by, claimed_at, expired_at, allocations, version
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (id) DO UPDATE SET
	remaining = EXCLUDED.remaining,
	status = EXCLUDED.status,
	claimed_by = EXCLUDED.claimed_by,
	claimed_at = EXCLUDED.claimed_at,
	expired_at = EXCLUDED.expired_at,
	allocations = EXCLUDED.allocations,
	version = EXCLUDED.version,
	archived_at = NOW()
WHERE listing_archive.version < EXCLUDED.version`,
		pgconv.UUIDToPgtype(s.ID), pgconv.UUIDToPgtype(s.ProducerID), s.Point.Lat, s.Point.Lon, tags,
		s.Quantity, s.Remaining, s.DiscountPct, s.Status.String(),
		pgconv.TimeToPgtype(s.CreatedAt), pgconv.TimeToPgtype(s.ExpiresAt),
		pgconv.UUIDPtrToPgtype(s.ClaimedBy), pgconv.TimePtrToPgtype(s.ClaimedAt), pgconv.TimePtrToPgtype(s.ExpiredAt),
		allocations, int64(s.Version),
	)
	if err != nil {
		return infra.WrapStorageErr(a.logger, infra.KindDBFailure, "archive listing", err)
	}
	return nil
}

const pgColumns = `id, producer_id, lat, lon, tags, quantity, remaining, discount_pct, status,
	created_at, expires_at, claimed_by, claimed_at, expired_at, allocations, version`

func (a *PostgresArchive) Get(ctx context.Context, id uuid.UUID) (listing.State, error) {
	row := a.pool.QueryRow(ctx, `SELECT `+pgColumns+` FROM listing_archive WHERE id = $1`, pgconv.UUIDToPgtype(id))
	s, err := scanPostgres(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return listing.State{}, ErrNotFound
	}
	if err != nil {
		return listing.State{}, infra.WrapStorageErr(a.logger, infra.KindDBFailure, "get archived listing", err)
	}
	return s, nil
}

func (a *PostgresArchive) History(ctx context.Context, producerID uuid.UUID, limit int) ([]listing.State, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT `+pgColumns+` FROM listing_archive
		 WHERE producer_id = $1 ORDER BY created_at DESC, id LIMIT $2`,
		pgconv.UUIDToPgtype(producerID), normalizeLimit(limit))
	if err != nil {
		return nil, infra.WrapStorageErr(a.logger, infra.KindDBFailure, "list archived listings", err)
	}
	defer rows.Close()

	out := make([]listing.State, 0)
	for rows.Next() {
		s, err := scanPostgres(rows)
		if err != nil {
			return nil, infra.WrapStorageErr(a.logger, infra.KindDBFailure, "scan archived listing", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapStorageErr(a.logger, infra.KindDBFailure, "iterate archived listings", err)
	}
	return out, nil
}

func scanPostgres(r pgx.Row) (listing.State, error) {
	var (
		s                         listing.State
		id, producerID, claimedBy pgtype.UUID
		createdAt, expiresAt      pgtype.Timestamptz
		claimedAt, expiredAt      pgtype.Timestamptz
		lat, lon                  float64
		status                    string
		allocations               []byte
		version                   int64
	)
	if err := r.Scan(&id, &producerID, &lat, &lon, &s.Tags, &s.Quantity, &s.Remaining, &s.DiscountPct,
		&status, &createdAt, &expiresAt, &claimedBy, &claimedAt, &expiredAt, &allocations, &version); err != nil {
		return listing.State{}, err
	}
	if err := json.Unmarshal(allocations, &s.Allocations); err != nil {
		return listing.State{}, err
	}

	s.ID = uuid.UUID(id.Bytes)
	s.ProducerID = uuid.UUID(producerID.Bytes)
	s.Point = geo.Point{Lat: lat, Lon: lon}
	s.Status = listing.Status(status)
	s.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	s.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	s.ClaimedBy = pgconv.UUIDPtrFromPgtype(claimedBy)
	s.ClaimedAt = pgconv.TimePtrFromPgtype(claimedAt)
	s.ExpiredAt = pgconv.TimePtrFromPgtype(expiredAt)
	s.Version = uint64(version)
	return s, nil
}
