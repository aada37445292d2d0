// Package engine serializes all external events into the core services.
// Location fixes, telemetry updates and user actions arrive asynchronously
// from platform collaborators; everything mutating crosses this facade under
// one mutex so the core sees a single writer.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/challenge"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/exploration"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/path"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/poi"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/progression"
)

// ErrInvalidCoordinate is returned for NaN or out-of-range fixes, which are
// rejected at the boundary instead of producing undefined grid buckets.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Engine wires the trackers and the progression services together and owns
// the latest collaborator-supplied counters (steps, friends).
type Engine struct {
	mu sync.Mutex

	path        *path.Service
	exploration *exploration.Service
	pois        *poi.Service
	progression *progression.Service
	scheduler   *challenge.Scheduler

	steps   int
	friends int

	logger zerolog.Logger
}

func New(
	pathSvc *path.Service,
	explorationSvc *exploration.Service,
	poiSvc *poi.Service,
	progressionSvc *progression.Service,
	scheduler *challenge.Scheduler,
	logger zerolog.Logger,
) *Engine {
	return &Engine{
		path:        pathSvc,
		exploration: explorationSvc,
		pois:        poiSvc,
		progression: progressionSvc,
		scheduler:   scheduler,
		logger:      logger.With().Str("service", "engine").Logger(),
	}
}

// Init loads persisted state for every component. Load failures fall back to
// defaults inside each service; only POI database errors surface.
func (e *Engine) Init(ctx context.Context) error {
	if err := e.pois.InitService(ctx); err != nil {
		return fmt.Errorf("failed to initialize POI registry: %w", err)
	}
	e.path.Load(ctx)
	e.exploration.Load(ctx)
	e.progression.Load(ctx)
	return nil
}

// HandleLocationFix processes one raw GPS fix end to end: path dedup and
// distance, exploration tracking, POI visit detection and a progress update
// from the resulting telemetry.
func (e *Engine) HandleLocationFix(ctx context.Context, c model.Coordinate) error {
	if !c.Valid() {
		return ErrInvalidCoordinate
	}

	e.mu.Lock()
	now := time.Now()
	e.path.Ingest(c)
	firstVisits := e.exploration.TrackLocation(c, now)
	for _, p := range firstVisits {
		e.progression.AddActivity(model.ActivityTypeMilestone, "New place discovered!",
			fmt.Sprintf("First visit to %s", p.Name), now)
	}
	e.progression.UpdateProgress(e.telemetryLocked(), now)
	e.mu.Unlock()

	e.flushAsync(ctx)
	return nil
}

// UpdateTelemetry records the latest collaborator counters (step source,
// friend source) and reruns the progress update.
func (e *Engine) UpdateTelemetry(ctx context.Context, steps, friends int) {
	e.mu.Lock()
	if steps >= 0 {
		e.steps = steps
	}
	if friends >= 0 {
		e.friends = friends
	}
	e.progression.UpdateProgress(e.telemetryLocked(), time.Now())
	e.mu.Unlock()

	e.flushAsync(ctx)
}

// StartSession runs the once-per-session bookkeeping: streak continuity,
// challenge generation and a progress refresh. Safe to call repeatedly; both
// checks are idempotent within their day or week.
func (e *Engine) StartSession(ctx context.Context) {
	e.mu.Lock()
	now := time.Now()
	e.progression.CheckStreak(now)
	e.scheduler.GenerateDailyChallenges(now)
	e.progression.UpdateProgress(e.telemetryLocked(), now)
	e.mu.Unlock()

	e.flushAsync(ctx)
}

// telemetryLocked aggregates the live metrics fed to the progression engine.
func (e *Engine) telemetryLocked() model.Telemetry {
	return model.Telemetry{
		Steps:      e.steps,
		Distance:   e.path.TotalDistance(),
		PathPoints: e.path.PointCount(),
		Friends:    e.friends,
	}
}

// ResetPath clears the path and distance accumulator only.
func (e *Engine) ResetPath(ctx context.Context) {
	e.mu.Lock()
	e.path.Reset(ctx)
	e.mu.Unlock()
}

// ResetExploration wipes heat, regions, cells, area and POI visit state.
func (e *Engine) ResetExploration(ctx context.Context) {
	e.mu.Lock()
	e.exploration.Reset(ctx)
	e.mu.Unlock()
}

// AddCustomPOI registers a user-created POI.
func (e *Engine) AddCustomPOI(ctx context.Context, name, notes string, c model.Coordinate) (*model.POI, error) {
	if !c.Valid() {
		return nil, ErrInvalidCoordinate
	}
	e.mu.Lock()
	p, err := e.pois.AddCustom(name, notes, c, time.Now())
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	e.flushAsync(ctx)
	return p, nil
}

// RemovePOI deletes a custom POI.
func (e *Engine) RemovePOI(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pois.Remove(ctx, id)
}

// SetGoals replaces the user's daily/weekly targets.
func (e *Engine) SetGoals(ctx context.Context, g model.Goals) {
	e.mu.Lock()
	e.progression.SetGoals(g)
	e.mu.Unlock()
	e.flushAsync(ctx)
}

// Stats is the aggregated summary exposed to the presentation layer.
type Stats struct {
	Steps                 int     `json:"steps"`
	DistanceMeters        float64 `json:"distance_meters"`
	PathPoints            int     `json:"path_points"`
	TotalPoints           int     `json:"total_points"`
	CurrentStreak         int     `json:"current_streak"`
	LongestStreak         int     `json:"longest_streak"`
	ExplorationPercentage float64 `json:"exploration_percentage"`
	POIsVisited           int     `json:"pois_visited"`
	Friends               int     `json:"friends"`
}

// Stats aggregates the summary counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	streak := e.progression.Streak()
	return Stats{
		Steps:                 e.steps,
		DistanceMeters:        e.path.TotalDistance(),
		PathPoints:            e.path.PointCount(),
		TotalPoints:           e.progression.TotalPoints(),
		CurrentStreak:         streak.Current,
		LongestStreak:         streak.Longest,
		ExplorationPercentage: e.exploration.ExplorationPercentage(),
		POIsVisited:           e.pois.VisitedCount(),
		Friends:               e.friends,
	}
}

// Path exposes the path tracker for read access.
func (e *Engine) Path() *path.Service { return e.path }

// Exploration exposes the exploration tracker for read access.
func (e *Engine) Exploration() *exploration.Service { return e.exploration }

// POIs exposes the POI registry for read access.
func (e *Engine) POIs() *poi.Service { return e.pois }

// Progression exposes the reward engine for read access.
func (e *Engine) Progression() *progression.Service { return e.progression }

// Flush persists every component snapshot that changed. Grouped per logical
// event by the async trigger; also called by the backup worker and shutdown.
func (e *Engine) Flush(ctx context.Context) {
	e.path.Flush(ctx)
	e.exploration.Flush(ctx)
	e.progression.Flush(ctx)
}

// SavePOIs writes modified POIs to PostgreSQL.
func (e *Engine) SavePOIs(ctx context.Context) error {
	return e.pois.SaveDirtyToPG(ctx)
}

// flushAsync persists mutated snapshots without blocking the event path.
// Fire-and-forget: a failed save is retried by the backup worker.
func (e *Engine) flushAsync(ctx context.Context) {
	go e.Flush(context.WithoutCancel(ctx))
}
