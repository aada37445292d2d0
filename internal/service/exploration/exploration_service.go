// Package exploration maintains the fog-of-war map: per-cell visit heat,
// explored regions revealed on first visit and the coverage percentage.
package exploration

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Pragnesh-10/CampusExplorer/internal/geogrid"
	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/poi"
	"github.com/Pragnesh-10/CampusExplorer/internal/store"
	"github.com/Pragnesh-10/CampusExplorer/internal/util"
)

// Config holds the exploration grid geometry. HeatCellSize and FogCellSize
// are different granularities over the same coordinates; their keys must not
// be conflated.
type Config struct {
	HeatCellSize   float64
	FogCellSize    float64
	ExploredRadius float64
	CampusArea     float64
}

// Service owns the heat map points, the explored regions and the visited-cell
// set. POI visit state is delegated to the poi service on every tracked fix.
type Service struct {
	cfg Config

	mu           sync.RWMutex
	heatPoints   map[string]*model.HeatMapPoint
	regions      []model.ExploredRegion
	visitedCells map[string]bool
	totalArea    float64
	dirty        bool

	pois      *poi.Service
	snapshots store.SnapshotStore
	logger    zerolog.Logger
}

// NewService creates an exploration tracker.
func NewService(cfg Config, pois *poi.Service, snapshots store.SnapshotStore, logger zerolog.Logger) *Service {
	return &Service{
		cfg:          cfg,
		heatPoints:   make(map[string]*model.HeatMapPoint),
		visitedCells: make(map[string]bool),
		pois:         pois,
		snapshots:    snapshots,
		logger:       logger.With().Str("service", "exploration").Logger(),
	}
}

// Load restores the persisted snapshot, falling back to empty state on any
// decode problem.
func (s *Service) Load(ctx context.Context) {
	var snap model.ExplorationSnapshot
	found, err := s.snapshots.Load(ctx, store.KeyExploration, &snap)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to decode exploration snapshot, starting empty")
		return
	}
	if !found || snap.Version != model.SnapshotVersion {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.HeatPoints != nil {
		s.heatPoints = snap.HeatPoints
	}
	s.regions = snap.Regions
	if snap.VisitedCells != nil {
		s.visitedCells = snap.VisitedCells
	}
	s.totalArea = snap.TotalArea
}

// TrackLocation registers one fix: bumps heat intensity for its heat cell,
// reveals a new explored region when its fog cell is seen for the first time
// and runs POI visit detection. Returns the POIs visited for the first time.
func (s *Service) TrackLocation(c model.Coordinate, now time.Time) []*model.POI {
	s.mu.Lock()

	heatKey := geogrid.CellKeyFor(c, s.cfg.HeatCellSize).String()
	if hp, ok := s.heatPoints[heatKey]; ok {
		hp.Intensity++
	} else {
		s.heatPoints[heatKey] = &model.HeatMapPoint{
			Cell:      heatKey,
			Center:    geogrid.CellCenter(c, s.cfg.HeatCellSize),
			FirstSeen: now,
			Intensity: 1,
		}
	}

	// The fog grid is coarser than the heat grid; a new heat cell does not
	// imply a new region.
	fogKey := geogrid.CellKeyFor(c, s.cfg.FogCellSize).String()
	if !s.visitedCells[fogKey] {
		s.visitedCells[fogKey] = true
		s.regions = append(s.regions, model.ExploredRegion{
			Center:    c,
			Radius:    s.cfg.ExploredRadius,
			Timestamp: now,
		})
		s.totalArea += math.Pi * s.cfg.ExploredRadius * s.cfg.ExploredRadius
	}

	s.dirty = true
	s.mu.Unlock()

	return s.pois.CheckVisits(c, now)
}

// ExplorationPercentage returns the covered share of the configured campus
// area, capped at 100. Overlapping regions are double-counted; this is an
// upper-bound heuristic, not a polygon union.
func (s *Service) ExplorationPercentage() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg.CampusArea <= 0 {
		return 0
	}
	return math.Min(100, 100*s.totalArea/s.cfg.CampusArea)
}

// IsExplored reports whether c lies within at least one explored region.
// Linear scan; region count is bounded by fog-grid cardinality.
func (s *Service) IsExplored(c model.Coordinate) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.regions {
		if util.Distance(c, r.Center) <= r.Radius {
			return true
		}
	}
	return false
}

// HeatPoints returns a copy of the heat map entries.
func (s *Service) HeatPoints() []*model.HeatMapPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.HeatMapPoint, 0, len(s.heatPoints))
	for _, hp := range s.heatPoints {
		cp := *hp
		out = append(out, &cp)
	}
	return out
}

// Regions returns a copy of the explored regions.
func (s *Service) Regions() []model.ExploredRegion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ExploredRegion, len(s.regions))
	copy(out, s.regions)
	return out
}

// TotalArea returns the accumulated explored area in square meters.
func (s *Service) TotalArea() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalArea
}

// Reset wipes heat points, explored regions, the visited-cell set and the
// area accumulator, un-visits every POI and removes the persisted snapshot.
// Full reset, not partial.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	s.heatPoints = make(map[string]*model.HeatMapPoint)
	s.regions = nil
	s.visitedCells = make(map[string]bool)
	s.totalArea = 0
	s.dirty = false
	s.mu.Unlock()

	s.pois.UnvisitAll()

	if err := s.snapshots.Delete(ctx, store.KeyExploration); err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete exploration snapshot")
	}
}

// Flush saves the snapshot if state changed since the last flush.
func (s *Service) Flush(ctx context.Context) {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	snap := model.ExplorationSnapshot{
		Version:      model.SnapshotVersion,
		HeatPoints:   make(map[string]*model.HeatMapPoint, len(s.heatPoints)),
		Regions:      append([]model.ExploredRegion(nil), s.regions...),
		VisitedCells: make(map[string]bool, len(s.visitedCells)),
		TotalArea:    s.totalArea,
		UpdatedAt:    time.Now(),
	}
	for k, hp := range s.heatPoints {
		cp := *hp
		snap.HeatPoints[k] = &cp
	}
	for k := range s.visitedCells {
		snap.VisitedCells[k] = true
	}
	s.mu.Unlock()

	if err := s.snapshots.Save(ctx, store.KeyExploration, snap); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save exploration snapshot")
		return
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}
