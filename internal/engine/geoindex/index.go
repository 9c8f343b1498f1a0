// Package geoindex is an in-memory grid index over listing locations.
//
// The sphere is cut into a fixed lat/lon grid. A radius query visits every
// cell intersecting the bounding box of the search circle and filters the
// points in those cells by exact distance, so it never misses a point
// within the radius and never returns one outside it.
package geoindex

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"lastbite/internal/pkg/geo"

	"github.com/google/uuid"
)

const (
	DefaultCellSizeMeters = 1000
	DefaultShards         = 64

	// full-scan threshold: scanning every point beats visiting more than
	// this many cells per indexed point.
	cellsPerPointScan = 4
)

type Candidate struct {
	ID             uuid.UUID
	DistanceMeters float64
}

type Entry struct {
	ID    uuid.UUID
	Point geo.Point
}

type cellKey struct {
	row, col int
}

type cellShard struct {
	mu    sync.RWMutex
	cells map[cellKey]map[uuid.UUID]geo.Point
}

type ref struct {
	cell  cellKey
	point geo.Point
}

type refShard struct {
	mu   sync.RWMutex
	refs map[uuid.UUID]ref
}

type Index struct {
	rows, cols       int
	latStep, lonStep float64

	cellShards []*cellShard
	refShards  []*refShard
	size       atomic.Int64
}

func New(cellSizeMeters float64, shards int) *Index {
	if cellSizeMeters <= 0 {
		cellSizeMeters = DefaultCellSizeMeters
	}
	if shards <= 0 {
		shards = DefaultShards
	}
	deg := cellSizeMeters / geo.MetersPerDegree
	rows := int(math.Ceil(180 / deg))
	cols := int(math.Ceil(360 / deg))

	idx := &Index{
		rows:       rows,
		cols:       cols,
		latStep:    180 / float64(rows),
		lonStep:    360 / float64(cols),
		cellShards: make([]*cellShard, shards),
		refShards:  make([]*refShard, shards),
	}
	for i := range shards {
		idx.cellShards[i] = &cellShard{cells: make(map[cellKey]map[uuid.UUID]geo.Point)}
		idx.refShards[i] = &refShard{refs: make(map[uuid.UUID]ref)}
	}
	return idx
}

// Insert adds id at p, moving it if it is already indexed elsewhere.
func (x *Index) Insert(id uuid.UUID, p geo.Point) error {
	if err := p.Validate(); err != nil {
		return err
	}
	key := x.cellOf(p)

	rs := x.refShard(id)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if old, ok := rs.refs[id]; ok {
		x.removeFromCell(old.cell, id)
	} else {
		x.size.Add(1)
	}
	rs.refs[id] = ref{cell: key, point: p}

	cs := x.cellShard(key)
	cs.mu.Lock()
	bucket, ok := cs.cells[key]
	if !ok {
		bucket = make(map[uuid.UUID]geo.Point)
		cs.cells[key] = bucket
	}
	bucket[id] = p
	cs.mu.Unlock()
	return nil
}

// Remove drops id. It reports false when id was not indexed.
func (x *Index) Remove(id uuid.UUID) bool {
	rs := x.refShard(id)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	old, ok := rs.refs[id]
	if !ok {
		return false
	}
	delete(rs.refs, id)
	x.removeFromCell(old.cell, id)
	x.size.Add(-1)
	return true
}

func (x *Index) Contains(id uuid.UUID) bool {
	rs := x.refShard(id)
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	_, ok := rs.refs[id]
	return ok
}

func (x *Index) Len() int {
	return int(x.size.Load())
}

// Query returns every indexed id whose distance to center is at most
// radiusMeters. Order is unspecified.
func (x *Index) Query(center geo.Point, radiusMeters float64) []Candidate {
	out := make([]Candidate, 0)
	if radiusMeters < 0 || center.Validate() != nil {
		return out
	}

	rowLo, rowHi, colLo, colHi, fullRing := x.coverage(center, radiusMeters)
	rowsSpan := rowHi - rowLo + 1
	colsSpan := colHi - colLo + 1
	if fullRing {
		colsSpan = x.cols
	}
	if n := x.Len(); rowsSpan*colsSpan > cellsPerPointScan*n+1 {
		return x.scan(center, radiusMeters, out)
	}

	visit := func(key cellKey) {
		cs := x.cellShard(key)
		cs.mu.RLock()
		for id, p := range cs.cells[key] {
			if d := geo.Distance(center, p); d <= radiusMeters {
				out = append(out, Candidate{ID: id, DistanceMeters: d})
			}
		}
		cs.mu.RUnlock()
	}

	for row := rowLo; row <= rowHi; row++ {
		if fullRing {
			for col := 0; col < x.cols; col++ {
				visit(cellKey{row: row, col: col})
			}
			continue
		}
		for raw := colLo; raw <= colHi; raw++ {
			visit(cellKey{row: row, col: x.wrapCol(raw)})
		}
	}
	return out
}

// Rebuild replaces the whole index content.
func (x *Index) Rebuild(entries []Entry) error {
	for _, cs := range x.cellShards {
		cs.mu.Lock()
		cs.cells = make(map[cellKey]map[uuid.UUID]geo.Point)
		cs.mu.Unlock()
	}
	for _, rs := range x.refShards {
		rs.mu.Lock()
		rs.refs = make(map[uuid.UUID]ref)
		rs.mu.Unlock()
	}
	x.size.Store(0)

	for _, e := range entries {
		if err := x.Insert(e.ID, e.Point); err != nil {
			return err
		}
	}
	return nil
}

func (x *Index) scan(center geo.Point, radiusMeters float64, out []Candidate) []Candidate {
	for _, rs := range x.refShards {
		rs.mu.RLock()
		for id, r := range rs.refs {
			if d := geo.Distance(center, r.point); d <= radiusMeters {
				out = append(out, Candidate{ID: id, DistanceMeters: d})
			}
		}
		rs.mu.RUnlock()
	}
	return out
}

// coverage returns the row range and the unwrapped column range of the
// bounding box of the circle. The longitude half-span uses the latitude of
// the box edge farthest from the equator, where meridians are closest.
func (x *Index) coverage(c geo.Point, r float64) (rowLo, rowHi, colLo, colHi int, fullRing bool) {
	latHalf := r / geo.MetersPerDegree
	minLat := math.Max(-90, c.Lat-latHalf)
	maxLat := math.Min(90, c.Lat+latHalf)
	rowLo = x.row(minLat)
	rowHi = x.row(maxLat)

	phiMax := math.Max(math.Abs(minLat), math.Abs(maxLat)) * math.Pi / 180
	cos := math.Cos(phiMax)
	if cos <= 1e-12 {
		return rowLo, rowHi, 0, x.cols - 1, true
	}
	lonHalf := latHalf / cos
	if lonHalf >= 180 {
		return rowLo, rowHi, 0, x.cols - 1, true
	}
	colLo = int(math.Floor((c.Lon - lonHalf + 180) / x.lonStep))
	colHi = int(math.Floor((c.Lon + lonHalf + 180) / x.lonStep))
	if colHi-colLo+1 >= x.cols {
		return rowLo, rowHi, 0, x.cols - 1, true
	}
	return rowLo, rowHi, colLo, colHi, false
}

func (x *Index) cellOf(p geo.Point) cellKey {
	col := x.wrapCol(int(math.Floor((p.Lon + 180) / x.lonStep)))
	return cellKey{row: x.row(p.Lat), col: col}
}

func (x *Index) row(lat float64) int {
	r := int(math.Floor((lat + 90) / x.latStep))
	if r < 0 {
		return 0
	}
	if r >= x.rows {
		return x.rows - 1
	}
	return r
}

func (x *Index) wrapCol(raw int) int {
	c := raw % x.cols
	if c < 0 {
		c += x.cols
	}
	return c
}

func (x *Index) removeFromCell(key cellKey, id uuid.UUID) {
	cs := x.cellShard(key)
	cs.mu.Lock()
	if bucket, ok := cs.cells[key]; ok {
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(cs.cells, key)
		}
	}
	cs.mu.Unlock()
}

func (x *Index) cellShard(key cellKey) *cellShard {
	h := uint64(key.row)*uint64(x.cols) + uint64(key.col)
	return x.cellShards[h%uint64(len(x.cellShards))]
}

func (x *Index) refShard(id uuid.UUID) *refShard {
	h := binary.BigEndian.Uint64(id[8:])
	return x.refShards[h%uint64(len(x.refShards))]
}
