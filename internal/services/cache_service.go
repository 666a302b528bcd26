package services

import (
	"context"
	"fmt"
	"time"

	"bidapos/internal/utils"
	"bidapos/pkg/cache"
	"bidapos/pkg/logger"
)

// CacheService wraps the Redis client with key prefixing and a default TTL.
// It backs the repository read-through caches and the login rate limiter.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
	CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
	Ping(ctx context.Context) error
}

type cacheService struct {
	client     *cache.RedisCache
	logger     *logger.Logger
	keyPrefix  string
	defaultTTL time.Duration
}

func NewCacheService(client *cache.RedisCache, logger *logger.Logger, keyPrefix string, defaultTTL time.Duration) CacheService {
	return &cacheService{
		client:     client,
		logger:     logger,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if err := s.client.Get(ctx, s.buildKey(key), dest); err != nil {
		return err
	}

	s.logger.WithField("cache_key", key).Debug("Cache hit")
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.client.Set(ctx, s.buildKey(key), value, expiration); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.buildKey(key)
	}

	if err := s.client.Delete(ctx, fullKeys...); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	return nil
}

func (s *cacheService) DeletePattern(ctx context.Context, pattern string) error {
	return s.client.DeletePattern(ctx, s.buildKey(pattern))
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.client.Exists(ctx, s.buildKey(key))
}

// CheckRateLimit counts hits on a fixed window. The first hit in a window
// starts the expiry clock.
func (s *cacheService) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	rateLimitKey := s.buildKey(utils.CacheRateLimitPrefix + key)

	count, err := s.client.Increment(ctx, rateLimitKey)
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := s.client.SetExpire(ctx, rateLimitKey, window); err != nil {
			s.logger.WithError(err).WithField("cache_key", rateLimitKey).Warn("Failed to set rate limit window")
		}
	}

	return count <= limit, nil
}

func (s *cacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *cacheService) buildKey(key string) string {
	if s.keyPrefix != "" {
		return s.keyPrefix + ":" + key
	}
	return key
}
