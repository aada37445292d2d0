package config

import "time"

// Worker intervals
const (
	// RedisBackupInterval defines how often dirty component snapshots are
	// flushed to Redis
	RedisBackupInterval = 10 * time.Second

	// PostgresBackupInterval defines how often modified POIs are saved to
	// PostgreSQL
	PostgresBackupInterval = 60 * time.Second

	// SessionTickInterval defines how often the streak check and challenge
	// refresh run; both are no-ops within the same day/week
	SessionTickInterval = 15 * time.Minute
)
