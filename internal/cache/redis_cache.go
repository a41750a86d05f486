package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/hedge-finder-service/internal/models"
)

// RedisCache caches scored hedge opportunities in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string        // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 15 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// opportunityKey builds the per-pairing key: hedge:{event}:{bonus_book}:{hedge_book}
func opportunityKey(opp *models.HedgeOpportunity) string {
	return fmt.Sprintf("hedge:%s:%s:%s", opp.Event, opp.BonusBook, opp.HedgeBook)
}

// bestKey builds the best-pick key for an event
func bestKey(event string) string {
	return fmt.Sprintf("hedge:best:%s", event)
}

// Set caches one scored opportunity
func (c *RedisCache) Set(ctx context.Context, opp *models.HedgeOpportunity) error {
	key := opportunityKey(opp)

	data, err := json.Marshal(opp)
	if err != nil {
		return fmt.Errorf("failed to marshal opportunity: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached hedge opportunity")

	return nil
}

// SetBatch caches multiple scored opportunities
func (c *RedisCache) SetBatch(ctx context.Context, opportunities []models.HedgeOpportunity) error {
	if len(opportunities) == 0 {
		return nil
	}

	// Use pipeline for batch operations
	pipe := c.client.Pipeline()

	for i := range opportunities {
		data, err := json.Marshal(&opportunities[i])
		if err != nil {
			c.logger.Error().Err(err).Msg("failed to marshal opportunity")
			continue
		}
		pipe.Set(ctx, opportunityKey(&opportunities[i]), data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}

	c.logger.Info().
		Int("count", len(opportunities)).
		Msg("cached batch of hedge opportunities")

	return nil
}

// SetBest caches the best opportunity for an event
func (c *RedisCache) SetBest(ctx context.Context, opp *models.HedgeOpportunity) error {
	data, err := json.Marshal(opp)
	if err != nil {
		return fmt.Errorf("failed to marshal opportunity: %w", err)
	}

	if err := c.client.Set(ctx, bestKey(opp.Event), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	return nil
}

// GetBest retrieves the cached best opportunity for an event
func (c *RedisCache) GetBest(ctx context.Context, event string) (*models.HedgeOpportunity, error) {
	data, err := c.client.Get(ctx, bestKey(event)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("no opportunity found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var opp models.HedgeOpportunity
	if err := json.Unmarshal(data, &opp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opportunity: %w", err)
	}

	return &opp, nil
}

// GetByEvent retrieves all cached opportunities for an event
func (c *RedisCache) GetByEvent(ctx context.Context, event string) ([]models.HedgeOpportunity, error) {
	pattern := fmt.Sprintf("hedge:%s:*", event)

	// Scan for keys matching pattern
	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	opportunities := make([]models.HedgeOpportunity, 0, len(keys))
	for _, key := range keys {
		data, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to get key")
			continue
		}

		var opp models.HedgeOpportunity
		if err := json.Unmarshal(data, &opp); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to unmarshal opportunity")
			continue
		}

		opportunities = append(opportunities, opp)
	}

	return opportunities, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
