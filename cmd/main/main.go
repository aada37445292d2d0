package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Pragnesh-10/CampusExplorer/internal/api"
	"github.com/Pragnesh-10/CampusExplorer/internal/config"
	"github.com/Pragnesh-10/CampusExplorer/internal/model"
	"github.com/Pragnesh-10/CampusExplorer/internal/postgres"
	"github.com/Pragnesh-10/CampusExplorer/internal/redis"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/challenge"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/engine"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/exploration"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/path"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/poi"
	"github.com/Pragnesh-10/CampusExplorer/internal/service/progression"
	"github.com/Pragnesh-10/CampusExplorer/internal/store"
	"github.com/Pragnesh-10/CampusExplorer/internal/worker"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, redisClient := initializeDatabaseAndCache(cfg, logger)
	defer closeConnections(db, redisClient, logger)

	e := initializeServices(cfg, db, redisClient, logger)

	setupSignalHandler(e, db, redisClient, logger)

	worker.StartAllWorkers(e, logger)

	runAPIServer(cfg, e, logger)
}

// initializeDatabaseAndCache opens PostgreSQL and Redis. Either may be
// unavailable; the engine then runs on in-memory fallbacks and persistence is
// skipped rather than the process failing.
func initializeDatabaseAndCache(cfg config.Config, logger zerolog.Logger) (*gorm.DB, *goredis.Client) {
	var db *gorm.DB
	if cfg.DBUrl != "" {
		var err error
		db, err = postgres.Init(cfg.DBUrl)
		if err != nil {
			logger.Warn().Err(err).Msg("PostgreSQL unavailable, POI registry will be memory-only")
			db = nil
		}
	}

	var redisClient *goredis.Client
	if cfg.RedisUrl != "" {
		var err error
		redisClient, err = redis.Init(cfg.RedisUrl, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, snapshots will be memory-only")
			redisClient = nil
		}
	}

	return db, redisClient
}

func initializeServices(cfg config.Config, db *gorm.DB, redisClient *goredis.Client, logger zerolog.Logger) *engine.Engine {
	var snapshots store.SnapshotStore
	if redisClient != nil {
		snapshots = store.NewRedisStore(redisClient)
	} else {
		snapshots = store.NewMemoryStore()
	}

	poiSvc := poi.NewService(cfg.POIVisitRadiusM, db, logger)
	pathSvc := path.NewService(cfg.MinPointSeparationM, snapshots, logger)
	explorationSvc := exploration.NewService(exploration.Config{
		HeatCellSize:   cfg.HeatCellSizeM,
		FogCellSize:    cfg.FogCellSizeM,
		ExploredRadius: cfg.ExploredRadiusM,
		CampusArea:     cfg.CampusAreaM2,
	}, poiSvc, snapshots, logger)
	progressionSvc := progression.NewService(snapshots, &logNotifier{logger: logger}, logger)
	scheduler := challenge.NewScheduler(progressionSvc, logger)

	e := engine.New(pathSvc, explorationSvc, poiSvc, progressionSvc, scheduler, logger)

	ctx := context.Background()
	if err := e.Init(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize engine")
	}

	// Session bookkeeping runs once at startup, then on the session worker.
	e.StartSession(ctx)

	return e
}

// logNotifier is the notification sink. Push delivery is out of scope; the
// sink records what would have been sent.
type logNotifier struct {
	logger zerolog.Logger
}

func (n *logNotifier) Notify(kind model.ActivityType, title, body string) {
	n.logger.Info().
		Str("kind", string(kind)).
		Str("title", title).
		Str("body", body).
		Msg("Notification")
}

func runAPIServer(cfg config.Config, e *engine.Engine, logger zerolog.Logger) {
	r := gin.Default()
	api.SetupRouter(r, e)

	logger.Info().Str("port", cfg.Port).Msg("Starting API server")
	if err := r.Run(cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("API server failed")
	}
}

func closeConnections(db *gorm.DB, redisClient *goredis.Client, logger zerolog.Logger) {
	if err := postgres.Close(db); err != nil {
		logger.Error().Err(err).Msg("Error closing PostgreSQL connection")
	}
	if err := redis.Close(redisClient, logger); err != nil {
		logger.Error().Err(err).Msg("Error closing Redis connection")
	}
}

func setupSignalHandler(e *engine.Engine, db *gorm.DB, redisClient *goredis.Client, logger zerolog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logger.Info().Msg("Shutdown signal received, flushing state...")
		ctx := context.Background()
		e.Flush(ctx)
		if err := e.SavePOIs(ctx); err != nil {
			logger.Error().Err(err).Msg("Error saving POIs during shutdown")
		}
		closeConnections(db, redisClient, logger)
		os.Exit(0)
	}()
}
