// Package poi manages the point-of-interest registry and visit detection.
package poi

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/dhconnelly/rtreego"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/storage"
	"github.com/Pragnesh-10/CampusExplorer/internal/util"
)

var (
	// ErrNotFound is returned when no POI has the given id.
	ErrNotFound = errors.New("poi not found")
	// ErrNotCustom is returned when removing a seeded (non-custom) POI.
	ErrNotCustom = errors.New("only custom POIs can be removed")
)

const metersPerDegree = 111320.0

// poiSpatial wraps a POI for R-tree indexing as a tiny rectangle around its
// location.
type poiSpatial struct {
	poi *model.POI
}

// Bounds implements the rtreego.Spatial interface
func (p *poiSpatial) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{p.poi.Location.Lng, p.poi.Location.Lat},
		[]float64{0.00001, 0.00001},
	)
	return rect
}

// Service owns the POI registry. Visit state is mutated only by CheckVisits;
// there is no unvisit transition except a full exploration reset.
//
// mu guards the POI records themselves: the storage mutex only covers map
// operations, and accessors run on HTTP readers concurrently with the visit
// detector. Every accessor returns copies so callers never hold live records.
type Service struct {
	visitRadius float64

	mu           sync.RWMutex
	storage      storage.Storage[string, *model.POI]
	spatialIndex *rtreego.Rtree
	indexMutex   sync.RWMutex

	db     *gorm.DB // nil when running without PostgreSQL
	logger zerolog.Logger
}

func clonePOI(p *model.POI) *model.POI {
	cp := *p
	if p.LastVisited != nil {
		t := *p.LastVisited
		cp.LastVisited = &t
	}
	return &cp
}

// NewService creates a POI service. db may be nil; the registry then lives in
// memory only.
func NewService(visitRadius float64, db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{
		visitRadius:  visitRadius,
		storage:      storage.NewMemoryStorage[string, *model.POI](),
		spatialIndex: rtreego.NewTree(2, 25, 50),
		db:           db,
		logger:       logger.With().Str("service", "poi").Logger(),
	}
}

// InitService loads POIs from PostgreSQL, seeding the fixed campus catalog on
// first run. Without a database the seed catalog is loaded directly.
func (s *Service) InitService(ctx context.Context) error {
	if s.db == nil {
		s.seed(seedCatalog())
		return nil
	}

	var pgPOIs []*model.POIPG
	if result := s.db.WithContext(ctx).Find(&pgPOIs); result.Error != nil {
		return result.Error
	}

	if len(pgPOIs) == 0 {
		catalog := seedCatalog()
		s.seed(catalog)
		for _, p := range catalog {
			if result := s.db.WithContext(ctx).Create(p.ToPG()); result.Error != nil {
				s.logger.Error().Err(result.Error).Str("poi", p.ID).Msg("Failed to seed POI")
			}
		}
		s.storage.ClearDirty(s.allIDs())
		s.logger.Info().Int("count", len(catalog)).Msg("Seeded POI catalog into PostgreSQL")
		return nil
	}

	pois := make([]*model.POI, len(pgPOIs))
	for i, pg := range pgPOIs {
		pois[i] = model.POIFromPG(pg)
	}
	s.seed(pois)
	s.storage.ClearDirty(s.allIDs())
	s.logger.Info().Int("count", len(pois)).Msg("Loaded POIs from PostgreSQL")
	return nil
}

func (s *Service) seed(pois []*model.POI) {
	s.mu.Lock()
	for _, p := range pois {
		s.storage.Set(p.ID, p)
	}
	s.mu.Unlock()
	s.rebuildSpatialIndex()
}

func (s *Service) allIDs() []string {
	ids := make([]string, 0, s.storage.Count())
	s.storage.ForEach(func(id string, _ *model.POI) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// rebuildSpatialIndex rebuilds the R-tree from the registry.
func (s *Service) rebuildSpatialIndex() {
	s.indexMutex.Lock()
	defer s.indexMutex.Unlock()

	s.spatialIndex = rtreego.NewTree(2, 25, 50)
	s.storage.ForEach(func(_ string, p *model.POI) bool {
		s.spatialIndex.Insert(&poiSpatial{poi: p})
		return true
	})
}

// nearby returns candidate POIs whose index entries intersect a search box of
// the visit radius around c. Candidates still need a precise distance check.
func (s *Service) nearby(c model.Coordinate) []*model.POI {
	s.indexMutex.RLock()
	defer s.indexMutex.RUnlock()

	latDeg := s.visitRadius / metersPerDegree
	cosLat := math.Cos(c.Lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngDeg := latDeg / cosLat

	searchRect, err := rtreego.NewRect(
		rtreego.Point{c.Lng - lngDeg, c.Lat - latDeg},
		[]float64{2 * lngDeg, 2 * latDeg},
	)
	if err != nil {
		s.logger.Warn().Err(err).Msg("invalid search rect")
		return nil
	}

	results := s.spatialIndex.SearchIntersect(searchRect)
	pois := make([]*model.POI, 0, len(results))
	for _, item := range results {
		pois = append(pois, item.(*poiSpatial).poi)
	}
	return pois
}

// CheckVisits marks every POI within the visit radius of c as visited and
// bumps its visit count. Repeated fixes inside the radius keep incrementing:
// dwell accumulates. Returns copies of the POIs that transitioned to visited
// for the first time.
func (s *Service) CheckVisits(c model.Coordinate, now time.Time) []*model.POI {
	candidates := s.nearby(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	var firstVisits []*model.POI
	for _, p := range candidates {
		if util.Distance(c, p.Location) > s.visitRadius {
			continue
		}
		first := !p.Visited
		p.Visited = true
		p.VisitCount++
		t := now
		p.LastVisited = &t
		p.UpdatedAt = now
		s.storage.Set(p.ID, p)
		if first {
			firstVisits = append(firstVisits, clonePOI(p))
		}
	}
	return firstVisits
}

// AddCustom registers a user-created POI.
func (s *Service) AddCustom(name, notes string, location model.Coordinate, now time.Time) (*model.POI, error) {
	if name == "" {
		return nil, errors.New("poi name must not be empty")
	}
	id, err := util.GenerateUniqueID(8)
	if err != nil {
		return nil, err
	}
	p := &model.POI{
		ID:        id,
		Name:      name,
		Category:  model.POICategoryCustom,
		Location:  location,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.storage.Set(p.ID, p)
	s.mu.Unlock()
	s.rebuildSpatialIndex()
	return clonePOI(p), nil
}

// Remove deletes a POI. Only custom POIs are removable.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	p, ok := s.storage.Get(id)
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	if !p.IsCustom() {
		s.mu.Unlock()
		return ErrNotCustom
	}
	s.storage.Delete(id)
	s.mu.Unlock()
	s.rebuildSpatialIndex()

	if s.db != nil {
		if result := s.db.WithContext(ctx).Delete(&model.POIPG{}, "id = ?", id); result.Error != nil {
			s.logger.Error().Err(result.Error).Str("poi", id).Msg("Failed to delete POI from PostgreSQL")
		}
	}
	return nil
}

// Get returns a copy of the POI with the given id.
func (s *Service) Get(id string) (*model.POI, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.storage.Get(id)
	if !ok {
		return nil, false
	}
	return clonePOI(p), true
}

// All returns copies of every registered POI.
func (s *Service) All() []*model.POI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	live := s.storage.GetAllValues()
	out := make([]*model.POI, len(live))
	for i, p := range live {
		out[i] = clonePOI(p)
	}
	return out
}

// VisitedCount returns the number of POIs visited at least once.
func (s *Service) VisitedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	s.storage.ForEach(func(_ string, p *model.POI) bool {
		if p.Visited {
			count++
		}
		return true
	})
	return count
}

// UnvisitAll clears the visit state of every POI. Called by the full
// exploration reset only.
func (s *Service) UnvisitAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storage.ForEach(func(id string, p *model.POI) bool {
		if p.Visited || p.VisitCount != 0 {
			p.Visited = false
			p.VisitCount = 0
			p.LastVisited = nil
			s.storage.Set(id, p)
		}
		return true
	})
}

// SaveDirtyToPG writes modified POIs to PostgreSQL. No-op without a database.
func (s *Service) SaveDirtyToPG(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	// Convert under the read lock; the transaction itself runs without it.
	s.mu.RLock()
	dirty := s.storage.GetDirty()
	keys := make([]string, 0, len(dirty))
	rows := make([]*model.POIPG, 0, len(dirty))
	for id, p := range dirty {
		keys = append(keys, id)
		rows = append(rows, p.ToPG())
	}
	s.mu.RUnlock()

	if len(rows) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if result := tx.Save(row); result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Clear flags only after successful save
	s.storage.ClearDirty(keys)
	s.logger.Debug().Int("count", len(keys)).Msg("Saved POIs to PostgreSQL")
	return nil
}
