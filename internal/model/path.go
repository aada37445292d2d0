package model

import "time"

// SnapshotVersion tags every persisted snapshot so a format change decodes to
// defaults instead of silently misreading old data.
const SnapshotVersion = 1

// PathSnapshot is the persisted state of the path tracker. Points and the
// distance accumulator live in one snapshot under one key so a partial load
// cannot leave them out of sync.
type PathSnapshot struct {
	Version       int          `json:"version"`
	Points        []Coordinate `json:"points"`
	TotalDistance float64      `json:"total_distance"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
