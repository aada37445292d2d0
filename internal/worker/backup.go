package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Pragnesh-10/CampusExplorer/internal/config"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/engine"
)

// StartBackupWorker starts the workers that persist dirty state: component
// snapshots to Redis and modified POIs to PostgreSQL.
func StartBackupWorker(e *engine.Engine, logger zerolog.Logger) {
	redisTicker := time.NewTicker(config.RedisBackupInterval)
	go func() {
		for range redisTicker.C {
			e.Flush(context.Background())
		}
	}()

	pgTicker := time.NewTicker(config.PostgresBackupInterval)
	go func() {
		for range pgTicker.C {
			if err := e.SavePOIs(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Error saving POIs to PostgreSQL")
			}
		}
	}()

	logger.Info().
		Dur("redis_interval", config.RedisBackupInterval).
		Dur("postgres_interval", config.PostgresBackupInterval).
		Msg("Backup worker started")
}
