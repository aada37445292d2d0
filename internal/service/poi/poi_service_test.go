package poi_test

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/poi"
	"github.com/Pragnesh-10/CampusExplorer/internal/util"
)

func newService(t *testing.T) *poi.Service {
	t.Helper()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	s := poi.NewService(30.0, nil, logger)
	require.NoError(t, s.InitService(context.Background()))
	return s
}

func TestInitService_SeedsCatalog(t *testing.T) {
	s := newService(t)
	assert.NotEmpty(t, s.All())
	assert.Equal(t, 0, s.VisitedCount())
}

func TestCheckVisits_DwellAccumulates(t *testing.T) {
	s := newService(t)
	target := model.Coordinate{Lat: 16.4000, Lng: 80.5000}
	p, err := s.AddCustom("Fountain", "", target, time.Now())
	require.NoError(t, err)

	inside := util.MoveToward(target, model.Coordinate{Lat: 17, Lng: 80.5}, 10)
	outside := util.MoveToward(target, model.Coordinate{Lat: 17, Lng: 80.5}, 100)

	// First fix inside the radius: visited transition plus one count.
	first := s.CheckVisits(inside, time.Now())
	require.Len(t, first, 1)
	assert.Equal(t, p.ID, first[0].ID)

	got, _ := s.Get(p.ID)
	assert.True(t, got.Visited)
	assert.Equal(t, 1, got.VisitCount)
	assert.NotNil(t, got.LastVisited)

	// Second fix still inside: no new transition, count keeps growing.
	second := s.CheckVisits(inside, time.Now())
	assert.Empty(t, second)

	got, _ = s.Get(p.ID)
	assert.True(t, got.Visited)
	assert.Equal(t, 2, got.VisitCount)

	// Fix outside the radius leaves the count unchanged.
	s.CheckVisits(outside, time.Now())

	got, _ = s.Get(p.ID)
	assert.Equal(t, 2, got.VisitCount)
}

func TestCheckVisits_ExactRadiusBoundary(t *testing.T) {
	s := newService(t)
	target := model.Coordinate{Lat: 16.4000, Lng: 80.5000}
	p, err := s.AddCustom("Gate", "", target, time.Now())
	require.NoError(t, err)

	nearEdge := util.MoveToward(target, model.Coordinate{Lat: 17, Lng: 80.5}, 29)
	s.CheckVisits(nearEdge, time.Now())

	got, _ := s.Get(p.ID)
	assert.Equal(t, 1, got.VisitCount)
}

func TestAddCustom_RejectsEmptyName(t *testing.T) {
	s := newService(t)
	_, err := s.AddCustom("", "", model.Coordinate{Lat: 16.4, Lng: 80.5}, time.Now())
	assert.Error(t, err)
}

func TestRemove_CustomOnly(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	p, err := s.AddCustom("My Spot", "bench under the tree", model.Coordinate{Lat: 16.4, Lng: 80.5}, time.Now())
	require.NoError(t, err)

	// Seeded POIs cannot be removed.
	err = s.Remove(ctx, "central-library")
	assert.ErrorIs(t, err, poi.ErrNotCustom)

	// Unknown ids report not found.
	err = s.Remove(ctx, "no-such-poi")
	assert.ErrorIs(t, err, poi.ErrNotFound)

	// Custom POIs can.
	require.NoError(t, s.Remove(ctx, p.ID))
	_, ok := s.Get(p.ID)
	assert.False(t, ok)
}

func TestUnvisitAll_ClearsVisitState(t *testing.T) {
	s := newService(t)
	target := model.Coordinate{Lat: 16.4000, Lng: 80.5000}
	p, err := s.AddCustom("Fountain", "", target, time.Now())
	require.NoError(t, err)

	s.CheckVisits(target, time.Now())
	require.Equal(t, 1, s.VisitedCount())

	s.UnvisitAll()

	got, _ := s.Get(p.ID)
	assert.False(t, got.Visited)
	assert.Equal(t, 0, got.VisitCount)
	assert.Nil(t, got.LastVisited)
	assert.Equal(t, 0, s.VisitedCount())
}

func TestAccessors_ReturnCopies(t *testing.T) {
	s := newService(t)
	target := model.Coordinate{Lat: 16.4000, Lng: 80.5000}
	p, err := s.AddCustom("Fountain", "", target, time.Now())
	require.NoError(t, err)

	s.CheckVisits(target, time.Now())

	got, _ := s.Get(p.ID)
	got.VisitCount = 99
	got.Visited = false

	// Mutating a returned record must not reach the registry.
	again, _ := s.Get(p.ID)
	assert.Equal(t, 1, again.VisitCount)
	assert.True(t, again.Visited)

	for _, item := range s.All() {
		item.VisitCount = 77
	}
	again, _ = s.Get(p.ID)
	assert.Equal(t, 1, again.VisitCount)
}

func TestAll_SafeDuringVisitDetection(t *testing.T) {
	s := newService(t)
	target := model.Coordinate{Lat: 16.4000, Lng: 80.5000}
	_, err := s.AddCustom("Fountain", "", target, time.Now())
	require.NoError(t, err)

	// Readers serialize the registry while the detector mutates visit state,
	// as the HTTP handlers do against the location-ingest path.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.CheckVisits(target, time.Now())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := json.Marshal(s.All()); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	wg.Wait()

	got, ok := s.Get("does-not-exist")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCheckVisits_NoUnvisitTransition(t *testing.T) {
	s := newService(t)
	target := model.Coordinate{Lat: 16.4000, Lng: 80.5000}
	p, err := s.AddCustom("Fountain", "", target, time.Now())
	require.NoError(t, err)

	s.CheckVisits(target, time.Now())
	farAway := model.Coordinate{Lat: 16.5, Lng: 80.6}
	s.CheckVisits(farAway, time.Now())

	got, _ := s.Get(p.ID)
	assert.True(t, got.Visited)
}
