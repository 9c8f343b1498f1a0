package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"lastbite/internal/domain/listing"
	"lastbite/internal/infra"
	"lastbite/internal/pkg/geo"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteArchive struct {
	db     *sql.DB
	logger *slog.Logger
}

func OpenSQLite(path string, logger *slog.Logger) (*SQLiteArchive, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, infra.WrapStorageErr(logger, infra.KindDBFailure, "create archive dir", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, infra.WrapStorageErr(logger, infra.KindDBFailure, "open sqlite archive", err)
	}
	// one writer; also keeps ":memory:" on a single database
	db.SetMaxOpenConns(1)

	a := &SQLiteArchive{db: db, logger: logger}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, infra.WrapStorageErr(logger, infra.KindDBFailure, "migrate sqlite archive", err)
	}
	return a, nil
}

func (a *SQLiteArchive) migrate() error {
	_, err := a.db.Exec(`
CREATE TABLE IF NOT EXISTS listing_archive (
	id           TEXT PRIMARY KEY,
	producer_id  TEXT NOT NULL,
	lat          REAL NOT NULL,
	lon          REAL NOT NULL,
	tags         TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	remaining    INTEGER NOT NULL,
	discount_pct INTEGER NOT NULL,
	status       TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	expires_at   TEXT NOT NULL,
	claimed_by   TEXT,
	claimed_at   TEXT,
	expired_at   TEXT,
	allocations  TEXT NOT NULL,
	version      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_listing_archive_producer
	ON listing_archive (producer_id, created_at DESC);
`)
	return err
}

func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

func (a *SQLiteArchive) Archive(ctx context.Context, s listing.State) error {
	tags, err := json.Marshal(s.Tags)
	if err != nil {
		return infra.WrapStorageErr(a.logger, infra.KindDBFailure, "encode tags", err)
	}
	allocations, err := json.Marshal(s.Allocations)
	if err != nil {
		return infra.WrapStorageErr(a.logger, infra.KindDBFailure, "encode allocations", err)
	}

	var claimedBy sql.NullString
	if s.ClaimedBy != nil {
		claimedBy = sql.NullString{String: s.ClaimedBy.String(), Valid: true}
	}

	_, err = a.db.ExecContext(ctx, `
INSERT INTO listing_archive (
	id, producer_id, lat, lon, tags, quantity, remaining, discount_pct, status,
	created_at, expires_at, claimed_by, claimed_at, expired_at, allocations, version
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	remaining = excluded.remaining,
	status = excluded.status,
	claimed_by = excluded.claimed_by,
	claimed_at = excluded.claimed_at,
	expired_at = excluded.expired_at,
	allocations = excluded.allocations,
	version = excluded.version
WHERE listing_archive.version < excluded.version`,
		s.ID.String(), s.ProducerID.String(), s.Point.Lat, s.Point.Lon, string(tags),
		s.Quantity, s.Remaining, s.DiscountPct, s.Status.String(),
		iso(s.CreatedAt), iso(s.ExpiresAt), claimedBy, isoPtr(s.ClaimedAt), isoPtr(s.ExpiredAt),
		string(allocations), int64(s.Version),
	)
	if err != nil {
		return infra.WrapStorageErr(a.logger, infra.KindDBFailure, "archive listing", err)
	}
	return nil
}

const sqliteColumns = `id, producer_id, lat, lon, tags, quantity, remaining, discount_pct, status,
	created_at, expires_at, claimed_by, claimed_at, expired_at, allocations, version`

func (a *SQLiteArchive) Get(ctx context.Context, id uuid.UUID) (listing.State, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT `+sqliteColumns+` FROM listing_archive WHERE id = ?`, id.String())
	s, err := scanSQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return listing.State{}, ErrNotFound
	}
	if err != nil {
		return listing.State{}, infra.WrapStorageErr(a.logger, infra.KindDBFailure, "get archived listing", err)
	}
	return s, nil
}

func (a *SQLiteArchive) History(ctx context.Context, producerID uuid.UUID, limit int) ([]listing.State, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT `+sqliteColumns+` FROM listing_archive
		 WHERE producer_id = ? ORDER BY created_at DESC, id LIMIT ?`,
		producerID.String(), normalizeLimit(limit))
	if err != nil {
		return nil, infra.WrapStorageErr(a.logger, infra.KindDBFailure, "list archived listings", err)
	}
	defer rows.Close()

	out := make([]listing.State, 0)
	for rows.Next() {
		s, err := scanSQLite(rows)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLite(r scanner) (listing.State, error) {
	var (
		s                                 listing.State
		id, producerID, tags, allocations string
		status, createdAt, expiresAt      string
		claimedBy, claimedAt, expiredAt   sql.NullString
		lat, lon                          float64
		version                           int64
	)
	if err := r.Scan(&id, &producerID, &lat, &lon, &tags, &s.Quantity, &s.Remaining, &s.DiscountPct,
		&status, &createdAt, &expiresAt, &claimedBy, &claimedAt, &expiredAt, &allocations, &version); err != nil {
		return listing.State{}, err
	}

	var err error
	if s.ID, err = uuid.Parse(id); err != nil {
		return listing.State{}, err
	}
	if s.ProducerID, err = uuid.Parse(producerID); err != nil {
		return listing.State{}, err
	}
	if err := json.Unmarshal([]byte(tags), &s.Tags); err != nil {
		return listing.State{}, err
	}
	if err := json.Unmarshal([]byte(allocations), &s.Allocations); err != nil {
		return listing.State{}, err
	}
	if s.CreatedAt, err = time.Parse(isoLayout, createdAt); err != nil {
		return listing.State{}, err
	}
	if s.ExpiresAt, err = time.Parse(isoLayout, expiresAt); err != nil {
		return listing.State{}, err
	}
	if claimedBy.Valid {
		by, err := uuid.Parse(claimedBy.String)
		if err != nil {
			return listing.State{}, err
		}
		s.ClaimedBy = &by
	}
	if s.ClaimedAt, err = parseNullTime(claimedAt); err != nil {
		return listing.State{}, err
	}
	if s.ExpiredAt, err = parseNullTime(expiredAt); err != nil {
		return listing.State{}, err
	}
	s.Point = geo.Point{Lat: lat, Lon: lon}
	s.Status = listing.Status(status)
	s.Version = uint64(version)
	return s, nil
}

// fixed width so that text order matches time order
const isoLayout = "2006-01-02T15:04:05.000000000Z07:00"

func iso(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func isoPtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: iso(*t), Valid: true}
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := time.Parse(isoLayout, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
