package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Pragnesh-10/CampusExplorer/internal/config"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/engine"
)

// StartSessionWorker periodically reruns the session bookkeeping so streak
// continuity and challenge refresh happen even when the app stays in the
// foreground across a day boundary. Both checks are no-ops within the same
// day/week.
func StartSessionWorker(e *engine.Engine, logger zerolog.Logger) {
	ticker := time.NewTicker(config.SessionTickInterval)
	go func() {
		for range ticker.C {
			e.StartSession(context.Background())
		}
	}()

	logger.Info().Dur("interval", config.SessionTickInterval).Msg("Session worker started")
}
