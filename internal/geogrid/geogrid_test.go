package geogrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pragnesh-10/CampusExplorer/internal/geogrid"
	"github.com/Pragnesh-10/CampusExplorer/internal/model"
)

func TestCellKeyFor_Deterministic(t *testing.T) {
	c := model.Coordinate{Lat: 16.4350, Lng: 80.5104}

	k1 := geogrid.CellKeyFor(c, 10)
	k2 := geogrid.CellKeyFor(c, 10)

	assert.Equal(t, k1, k2)
	assert.Equal(t, k1.String(), k2.String())
}

func TestCellKeyFor_NearbyPointsShareCell(t *testing.T) {
	// Two fixes well inside the same 50 m bucket.
	a := model.Coordinate{Lat: 16.43500, Lng: 80.51040}
	b := model.Coordinate{Lat: 16.43501, Lng: 80.51041}

	assert.Equal(t, geogrid.CellKeyFor(a, 50), geogrid.CellKeyFor(b, 50))
}

func TestCellKeyFor_DistantPointsDiffer(t *testing.T) {
	a := model.Coordinate{Lat: 16.4350, Lng: 80.5104}
	b := model.Coordinate{Lat: 16.4450, Lng: 80.5104} // ~1.1 km north

	assert.NotEqual(t, geogrid.CellKeyFor(a, 50), geogrid.CellKeyFor(b, 50))
}

func TestCellKeyFor_GranularitiesAreSeparateKeyspaces(t *testing.T) {
	// The same fix bucketed at 10 m and 50 m must not be treated as the same
	// cell identity.
	c := model.Coordinate{Lat: 16.4350, Lng: 80.5104}

	heat := geogrid.CellKeyFor(c, 10)
	fog := geogrid.CellKeyFor(c, 50)

	assert.NotEqual(t, heat, fog)
}

func TestCellCenter_StaysInCell(t *testing.T) {
	c := model.Coordinate{Lat: 16.4350, Lng: 80.5104}

	center := geogrid.CellCenter(c, 50)

	assert.Equal(t, geogrid.CellKeyFor(c, 50), geogrid.CellKeyFor(center, 50))
}

func TestCellKeyFor_NegativeCoordinates(t *testing.T) {
	a := model.Coordinate{Lat: -33.8688, Lng: -151.2093}
	b := model.Coordinate{Lat: -33.8688, Lng: -151.2093}

	assert.Equal(t, geogrid.CellKeyFor(a, 25), geogrid.CellKeyFor(b, 25))
}
