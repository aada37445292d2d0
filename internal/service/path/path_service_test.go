package path_test

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/path"
	"github.com/Pragnesh-10/CampusExplorer/internal/store"
	"github.com/Pragnesh-10/CampusExplorer/internal/util"
)

func newService() *path.Service {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	return path.NewService(3.0, store.NewMemoryStore(), logger)
}

var origin = model.Coordinate{Lat: 16.4350, Lng: 80.5104}

// north returns a point the given number of meters north of origin.
func north(meters float64) model.Coordinate {
	far := model.Coordinate{Lat: 17.0, Lng: 80.5104}
	return util.MoveToward(origin, far, meters)
}

func TestIngest_FirstFixAlwaysAccepted(t *testing.T) {
	s := newService()

	assert.True(t, s.Ingest(origin))
	assert.Equal(t, 1, s.PointCount())
	assert.Equal(t, 0.0, s.TotalDistance())
}

func TestIngest_DuplicateFixSuppressed(t *testing.T) {
	s := newService()

	s.Ingest(origin)
	accepted := s.Ingest(origin)

	assert.False(t, accepted)
	assert.Equal(t, 1, s.PointCount())
	assert.Equal(t, 0.0, s.TotalDistance())
}

func TestIngest_BelowSeparationDiscardedEntirely(t *testing.T) {
	s := newService()

	s.Ingest(origin)
	accepted := s.Ingest(north(1.5))

	// No append and no distance credit.
	assert.False(t, accepted)
	assert.Equal(t, 1, s.PointCount())
	assert.Equal(t, 0.0, s.TotalDistance())
}

func TestIngest_AcceptedFixCreditsHaversineDistance(t *testing.T) {
	s := newService()
	next := north(25)

	s.Ingest(origin)
	accepted := s.Ingest(next)

	require.True(t, accepted)
	assert.Equal(t, 2, s.PointCount())
	assert.InDelta(t, util.Distance(origin, next), s.TotalDistance(), 0.01)
}

func TestIngest_ConsecutivePointsRespectSeparation(t *testing.T) {
	s := newService()

	// A mix of accepted and suppressed fixes.
	offsets := []float64{0, 1, 4, 5, 10, 11, 30}
	for _, m := range offsets {
		s.Ingest(north(m))
	}

	points := s.Points()
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, util.Distance(points[i-1], points[i]), 3.0)
	}
}

func TestTotalDistance_Monotonic(t *testing.T) {
	s := newService()

	prev := 0.0
	for _, m := range []float64{0, 2, 5, 5.5, 12, 40, 41, 90} {
		s.Ingest(north(m))
		assert.GreaterOrEqual(t, s.TotalDistance(), prev)
		prev = s.TotalDistance()
	}
}

func TestReset_ClearsPathAndDistance(t *testing.T) {
	s := newService()
	s.Ingest(origin)
	s.Ingest(north(50))

	s.Reset(context.Background())

	assert.Equal(t, 0, s.PointCount())
	assert.Equal(t, 0.0, s.TotalDistance())
}

func TestReset_RemovesPersistedSnapshot(t *testing.T) {
	snapshots := store.NewMemoryStore()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := context.Background()

	s := path.NewService(3.0, snapshots, logger)
	s.Ingest(origin)
	s.Ingest(north(30))
	s.Flush(ctx)
	s.Reset(ctx)

	restored := path.NewService(3.0, snapshots, logger)
	restored.Load(ctx)

	assert.Equal(t, 0, restored.PointCount())
	assert.Equal(t, 0.0, restored.TotalDistance())
}

func TestFlushAndLoad_RestoresSnapshot(t *testing.T) {
	snapshots := store.NewMemoryStore()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	s := path.NewService(3.0, snapshots, logger)
	s.Ingest(origin)
	s.Ingest(north(30))
	s.Flush(context.Background())

	restored := path.NewService(3.0, snapshots, logger)
	restored.Load(context.Background())

	assert.Equal(t, s.Points(), restored.Points())
	assert.Equal(t, s.TotalDistance(), restored.TotalDistance())
}

func TestLoad_MissingSnapshotStartsEmpty(t *testing.T) {
	s := newService()
	s.Load(context.Background())

	assert.Equal(t, 0, s.PointCount())
	assert.Equal(t, 0.0, s.TotalDistance())
}
