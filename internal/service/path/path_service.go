// Package path tracks the user's travel history: it ingests raw location
// fixes, suppresses near-duplicate points and accumulates traveled distance.
package path

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/store"
	"github.com/Pragnesh-10/CampusExplorer/internal/util"
)

// Service owns the path sequence and the distance accumulator. The
// accumulator is updated incrementally from accepted fixes and is never
// recomputed from the stored points.
type Service struct {
	minSeparation float64

	mu            sync.RWMutex
	points        []model.Coordinate
	totalDistance float64
	dirty         bool

	snapshots store.SnapshotStore
	logger    zerolog.Logger
}

// NewService creates a path tracker. minSeparation is the minimum distance in
// meters between consecutive accepted points.
func NewService(minSeparation float64, snapshots store.SnapshotStore, logger zerolog.Logger) *Service {
	return &Service{
		minSeparation: minSeparation,
		snapshots:     snapshots,
		logger:        logger.With().Str("service", "path").Logger(),
	}
}

// Load restores the persisted snapshot. A missing, undecodable or
// version-mismatched snapshot falls back to an empty path.
func (s *Service) Load(ctx context.Context) {
	var snap model.PathSnapshot
	found, err := s.snapshots.Load(ctx, store.KeyPath, &snap)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to decode path snapshot, starting empty")
		return
	}
	if !found || snap.Version != model.SnapshotVersion {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = snap.Points
	s.totalDistance = snap.TotalDistance
}

// Ingest processes one raw location fix. The first fix is always accepted.
// A fix closer than the minimum separation to the last accepted point is
// discarded entirely: no append, no distance credit. Returns whether the fix
// was accepted.
func (s *Service) Ingest(fix model.Coordinate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.points) == 0 {
		s.points = append(s.points, fix)
		s.dirty = true
		return true
	}

	last := s.points[len(s.points)-1]
	d := util.Distance(last, fix)
	if d < s.minSeparation {
		return false
	}

	s.points = append(s.points, fix)
	s.totalDistance += d
	s.dirty = true
	return true
}

// Reset clears the path and the distance accumulator and removes the
// persisted snapshot. Other components are unaffected.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	s.points = nil
	s.totalDistance = 0
	s.dirty = false
	s.mu.Unlock()

	if err := s.snapshots.Delete(ctx, store.KeyPath); err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete path snapshot")
	}
}

// Points returns a copy of the accepted fixes in arrival order.
func (s *Service) Points() []model.Coordinate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Coordinate, len(s.points))
	copy(out, s.points)
	return out
}

// PointCount returns the number of accepted fixes.
func (s *Service) PointCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// TotalDistance returns the accumulated distance in meters.
func (s *Service) TotalDistance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalDistance
}

// LastPoint returns the most recent accepted fix, if any.
func (s *Service) LastPoint() (model.Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.points) == 0 {
		return model.Coordinate{}, false
	}
	return s.points[len(s.points)-1], true
}

// Flush saves the snapshot if the path changed since the last flush.
// Persistence is best-effort: a failed save keeps the dirty flag so the next
// flush retries.
func (s *Service) Flush(ctx context.Context) {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	snap := model.PathSnapshot{
		Version:       model.SnapshotVersion,
		Points:        append([]model.Coordinate(nil), s.points...),
		TotalDistance: s.totalDistance,
		UpdatedAt:     time.Now(),
	}
	s.mu.Unlock()

	if err := s.snapshots.Save(ctx, store.KeyPath, snap); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save path snapshot")
		return
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}
