package worker

import (
	"github.com/rs/zerolog"

	"github.com/Pragnesh-10/CampusExplorer/internal/service/engine"
)

// StartAllWorkers initializes and starts all background workers
func StartAllWorkers(e *engine.Engine, logger zerolog.Logger) {
	logger.Info().Msg("Starting all workers...")

	StartBackupWorker(e, logger)
	StartSessionWorker(e, logger)

	logger.Info().Msg("All workers started")
}
