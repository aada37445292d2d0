package model

import "math"

// Coordinate is a WGS84 latitude/longitude pair in degrees.
// Treated as a value: replaced, never mutated in place.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is a finite point on the globe.
// Fixes outside this range are rejected at the API boundary; below it the
// grid bucket for such values is undefined behavior.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	if math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
