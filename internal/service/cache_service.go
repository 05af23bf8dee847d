package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

// staleSuffix marks the long-lived copy served when the backend is unreachable.
const staleSuffix = ":stale"

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheConfig sets the lifetimes of fresh and stale copies.
type CacheConfig struct {
	TTL      time.Duration
	StaleTTL time.Duration
}

// CacheService wraps the cache repository with metrics, a fresh/stale pair per key,
// and error logging. Cache failures never fail the caller's request.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	cfg     CacheConfig
	logger  *zap.Logger
}

// NewCacheService constructs a cache service. A nil repo disables caching.
func NewCacheService(repo CacheRepository, metrics *MetricsService, cfg CacheConfig, logger *zap.Logger) *CacheService {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}
	if cfg.StaleTTL < cfg.TTL {
		cfg.StaleTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, cfg: cfg, logger: logger}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.repo != nil
}

// Get looks up the fresh copy of key. It returns true on a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	return s.lookup(ctx, key, dest)
}

// GetStale looks up the stale copy of key.
func (s *CacheService) GetStale(ctx context.Context, key string, dest interface{}) bool {
	return s.lookup(ctx, key+staleSuffix, dest)
}

func (s *CacheService) lookup(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

// Set stores value as both the fresh and the stale copy of key.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	start := time.Now()
	for _, entry := range []struct {
		key string
		ttl time.Duration
	}{{key, s.cfg.TTL}, {key + staleSuffix, s.cfg.StaleTTL}} {
		if err := s.repo.Set(ctx, entry.key, value, entry.ttl); err != nil {
			s.logger.Warn("cache set failed", zap.String("key", entry.key), zap.Error(err))
		}
	}
	s.metrics.ObserveCacheWrite(time.Since(start))
}

// Invalidate removes fresh and stale values matching pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
