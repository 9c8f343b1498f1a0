// Package journal is the durable record of listing state. Every committed
// transition overwrites the listing's key, so replay yields the latest
// state of every listing still held in memory.
package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"lastbite/internal/domain/listing"
	"lastbite/internal/infra"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
)

var keyPrefix = []byte("listing/")

type Journal struct {
	db     *pebble.DB
	logger *slog.Logger
}

func Open(dir string, logger *slog.Logger) (*Journal, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, infra.WrapStorageErr(logger, infra.KindJournalFailure, "open journal", err)
	}
	return &Journal{db: db, logger: logger}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Append writes the state synchronously. ctx is accepted for interface
// symmetry; pebble writes are not cancelable.
func (j *Journal) Append(_ context.Context, s listing.State) error {
	val, err := json.Marshal(s)
	if err != nil {
		return infra.WrapStorageErr(j.logger, infra.KindJournalFailure, "encode listing state", err)
	}
	if err := j.db.Set(keyFor(s.ID), val, pebble.Sync); err != nil {
		return infra.WrapStorageErr(j.logger, infra.KindJournalFailure, "append listing state", err)
	}
	return nil
}

func (j *Journal) Delete(_ context.Context, id uuid.UUID) error {
	if err := j.db.Delete(keyFor(id), pebble.Sync); err != nil {
		return infra.WrapStorageErr(j.logger, infra.KindJournalFailure, "delete listing state", err)
	}
	return nil
}

// Replay calls fn for every stored listing in key order.
func (j *Journal) Replay(fn func(listing.State) error) error {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: keyPrefix,
		UpperBound: upperBound(keyPrefix),
	})
	if err != nil {
		return infra.WrapStorageErr(j.logger, infra.KindJournalFailure, "open journal iterator", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var s listing.State
		if err := json.Unmarshal(iter.Value(), &s); err != nil {
			return infra.WrapStorageErr(j.logger, infra.KindCorrupted, "decode "+string(iter.Key()), err)
		}
		if err := fn(s); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Load collects every stored listing.
func (j *Journal) Load() ([]listing.State, error) {
	var out []listing.State
	err := j.Replay(func(s listing.State) error {
		out = append(out, s)
		return nil
	})
	return out, err
}

func keyFor(id uuid.UUID) []byte {
	return append(bytes.Clone(keyPrefix), id.String()...)
}

func upperBound(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	end[len(end)-1]++
	return end
}
