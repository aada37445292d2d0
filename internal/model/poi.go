package model

import (
	"time"

	"gorm.io/gorm"
)

// POICategory classifies a point of interest.
type POICategory string

const (
	POICategoryAcademic POICategory = "academic"
	POICategoryDining   POICategory = "dining"
	POICategorySports   POICategory = "sports"
	POICategoryLibrary  POICategory = "library"
	POICategoryDorm     POICategory = "dorm"
	POICategoryMedical  POICategory = "medical"
	POICategoryParking  POICategory = "parking"
	POICategoryLandmark POICategory = "landmark"
	POICategoryCustom   POICategory = "custom"
)

// ValidPOICategory reports whether s names a known category.
func ValidPOICategory(s string) bool {
	switch POICategory(s) {
	case POICategoryAcademic, POICategoryDining, POICategorySports,
		POICategoryLibrary, POICategoryDorm, POICategoryMedical,
		POICategoryParking, POICategoryLandmark, POICategoryCustom:
		return true
	}
	return false
}

// POI is the in-memory model of a point of interest. Visited, VisitCount and
// LastVisited are mutated only by the visit detector; custom POIs are the only
// ones that may be removed.
type POI struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    POICategory `json:"category"`
	Location    Coordinate  `json:"location"`
	Visited     bool        `json:"visited"`
	VisitCount  int         `json:"visit_count"`
	LastVisited *time.Time  `json:"last_visited,omitempty"`
	Notes       string      `json:"notes,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"-"`
}

// IsCustom reports whether the POI was created by the user.
func (p *POI) IsCustom() bool {
	return p.Category == POICategoryCustom
}

// POIPG is the GORM model for the POI entity.
type POIPG struct {
	ID          string      `gorm:"primaryKey"`
	Name        string      `gorm:"size:255;not null"`
	Category    POICategory `gorm:"size:50;not null"`
	Lat         float64     `gorm:"not null"`
	Lng         float64     `gorm:"not null"`
	Visited     bool        `gorm:"not null"`
	VisitCount  int         `gorm:"not null"`
	LastVisited *time.Time
	Notes       string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the table name
func (POIPG) TableName() string {
	return "pois"
}

// POIFromPG creates an in-memory POI from its PostgreSQL row.
func POIFromPG(pg *POIPG) *POI {
	return &POI{
		ID:          pg.ID,
		Name:        pg.Name,
		Category:    pg.Category,
		Location:    Coordinate{Lat: pg.Lat, Lng: pg.Lng},
		Visited:     pg.Visited,
		VisitCount:  pg.VisitCount,
		LastVisited: pg.LastVisited,
		Notes:       pg.Notes,
		UpdatedAt:   pg.UpdatedAt,
		CreatedAt:   pg.CreatedAt,
	}
}

// ToPG converts the POI to its PostgreSQL model.
func (p *POI) ToPG() *POIPG {
	return &POIPG{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Lat:         p.Location.Lat,
		Lng:         p.Location.Lng,
		Visited:     p.Visited,
		VisitCount:  p.VisitCount,
		LastVisited: p.LastVisited,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
