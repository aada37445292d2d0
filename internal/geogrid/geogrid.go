// Package geogrid discretizes continuous coordinates into fixed-size
// lat/lon buckets. It is the spatial substrate for path dedup, fog-of-war
// accounting and heat-map bucketing.
package geogrid

import (
	"fmt"
	"math"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
)

// metersPerDegree is the approximate ground length of one degree of
// latitude. Good enough for bucket sizing at campus scale.
const metersPerDegree = 111320.0

// CellKey identifies one axis-aligned grid bucket at a given granularity.
// Keys from different cell sizes live in different keyspaces and must not
// be mixed by callers.
type CellKey struct {
	X int64
	Y int64
}

// String renders the key in "x:y" form, used for JSON map keys.
func (k CellKey) String() string {
	return fmt.Sprintf("%d:%d", k.X, k.Y)
}

// CellKeyFor maps a coordinate to its bucket for the given cell size.
// Pure and deterministic: two coordinates share a key iff they fall in the
// same bucket. NaN or out-of-range input yields an unspecified but
// deterministic key rather than a panic; callers reject such fixes upstream.
func CellKeyFor(c model.Coordinate, cellSizeMeters float64) CellKey {
	degPerCell := cellSizeMeters / metersPerDegree
	return CellKey{
		X: int64(math.Floor(c.Lat / degPerCell)),
		Y: int64(math.Floor(c.Lng / degPerCell)),
	}
}

// CellCenter returns the center coordinate of the bucket containing c at the
// given cell size. Used to anchor heat-map points and explored regions to the
// cell rather than the raw fix.
func CellCenter(c model.Coordinate, cellSizeMeters float64) model.Coordinate {
	degPerCell := cellSizeMeters / metersPerDegree
	key := CellKeyFor(c, cellSizeMeters)
	return model.Coordinate{
		Lat: (float64(key.X) + 0.5) * degPerCell,
		Lng: (float64(key.Y) + 0.5) * degPerCell,
	}
}
