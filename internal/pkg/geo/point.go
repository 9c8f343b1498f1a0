// Package geo holds the coordinate type and the distance function shared by
// the geo index and the matching engine.
package geo

import (
	"errors"
	"math"
)

const (
	// EarthRadiusMeters is the mean Earth radius.
	EarthRadiusMeters = 6371008.8

	// MetersPerDegree is the length of one degree of latitude (and of longitude at the equator).
	MetersPerDegree = EarthRadiusMeters * math.Pi / 180
)

var ErrInvalidPoint = errors.New("invalid geographic point")

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewPoint(lat, lon float64) (Point, error) {
	p := Point{Lat: lat, Lon: lon}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) ||
		p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return ErrInvalidPoint
	}
	return nil
}

// Distance is the equirectangular approximation in meters, projected at the
// mean latitude of the two points. It is monotone with the great-circle
// distance at city scale, which is all ranking needs.
func Distance(a, b Point) float64 {
	meanLat := (a.Lat + b.Lat) / 2 * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := wrapLon(b.Lon-a.Lon) * math.Pi / 180
	x := dLon * math.Cos(meanLat)
	return EarthRadiusMeters * math.Sqrt(x*x+dLat*dLat)
}

// Haversine is the great-circle distance in meters.
func Haversine(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := wrapLon(b.Lon-a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// wrapLon maps a longitude difference into [-180, 180].
func wrapLon(d float64) float64 {
	for d > 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return d
}
