package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/varaher/prana/internal/config"
)

type Service struct {
	client *redis.Client
}

func NewService() *Service {
	log.Info().Msg("Initialising Redis service")
	url := config.GetRedisURL()

	if url == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: config.GetRedisPassword(),
		DB:       0,
	})

	return &Service{
		client: client,
	}
}

// Set stores a value in Redis with an optional expiration
func (s *Service) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	log.Debug().Str("key", key).Msg("Setting Redis key")
	return s.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value from Redis
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	log.Debug().Str("key", key).Msg("Getting Redis key")
	return s.client.Get(ctx, key).Result()
}

// Keys lists the keys matching a glob pattern
func (s *Service) Keys(ctx context.Context, pattern string) ([]string, error) {
	log.Debug().Str("pattern", pattern).Msg("Listing Redis keys")
	return s.client.Keys(ctx, pattern).Result()
}

// Delete removes a key from Redis
func (s *Service) Delete(ctx context.Context, key string) error {
	log.Debug().Str("key", key).Msg("Deleting Redis key")
	return s.client.Del(ctx, key).Err()
}

// Ping checks if Redis is accessible
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Service) Close() error {
	return s.client.Close()
}
