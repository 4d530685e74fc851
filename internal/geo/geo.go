// internal/geo/geo.go
//
// Spherical geodesy helpers used by the pair generator and the scoring engine.
// All functions work in degrees and kilometres and delegate the trigonometry
// to paulmach/orb, which models the Earth as a sphere of radius orb.EarthRadius.

package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// HalfCircumferenceKm is the longest great-circle distance on orb's sphere.
const HalfCircumferenceKm = math.Pi * orb.EarthRadius / 1000

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" toml:"lat"`
	Lng float64 `json:"lng" toml:"lng"`
}

// Point converts c to an orb point (orb uses lng, lat order).
func (c Coordinate) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }

// FromPoint converts an orb point back to a Coordinate.
func FromPoint(p orb.Point) Coordinate { return Coordinate{Lat: p.Lat(), Lng: p.Lon()} }

// Valid reports whether c lies within the latitude/longitude ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// DistanceKm returns the haversine great-circle distance between a and b.
func DistanceKm(a, b Coordinate) float64 {
	return orbgeo.DistanceHaversine(a.Point(), b.Point()) / 1000
}

// BearingDeg returns the initial bearing from a to b in [0, 360).
func BearingDeg(a, b Coordinate) float64 {
	return NormalizeDeg(orbgeo.Bearing(a.Point(), b.Point()))
}

// Project returns the point reached by travelling km kilometres from c
// along the given initial bearing.
func Project(c Coordinate, bearingDeg, km float64) Coordinate {
	p := orbgeo.PointAtBearingAndDistance(c.Point(), NormalizeDeg(bearingDeg), km*1000)
	out := FromPoint(p)
	out.Lng = wrapLng(out.Lng)
	return out
}

// NormalizeDeg folds any angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

func wrapLng(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}
