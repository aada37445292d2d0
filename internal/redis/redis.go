package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Init opens a Redis connection and verifies it with a ping.
func Init(redisURL string, logger zerolog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	logger.Info().Msg("Successfully connected to Redis")
	return client, nil
}

// Close closes the Redis client connection.
func Close(client *redis.Client, logger zerolog.Logger) error {
	if client == nil {
		return nil
	}
	logger.Info().Msg("Closing Redis connection...")
	return client.Close()
}
