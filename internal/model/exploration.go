package model

import "time"

// HeatMapPoint accumulates visit intensity for one heat-grid cell.
// One entry per distinct cell; revisits bump Intensity instead of
// creating duplicates.
type HeatMapPoint struct {
	Cell      string    `json:"cell"`
	Center    Coordinate `json:"center"`
	FirstSeen time.Time `json:"first_seen"`
	Intensity int       `json:"intensity"`
}

// ExploredRegion is a fixed-radius disc revealed on first visit to a
// fog-of-war cell. Radius is set at creation and never changes.
type ExploredRegion struct {
	Center    Coordinate `json:"center"`
	Radius    float64    `json:"radius"`
	Timestamp time.Time  `json:"timestamp"`
}

// ExplorationSnapshot is the persisted state of the exploration tracker.
type ExplorationSnapshot struct {
	Version      int                      `json:"version"`
	HeatPoints   map[string]*HeatMapPoint `json:"heat_points"`
	Regions      []ExploredRegion         `json:"regions"`
	VisitedCells map[string]bool          `json:"visited_cells"`
	TotalArea    float64                  `json:"total_area"`
	UpdatedAt    time.Time                `json:"updated_at"`
}
