package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/cache"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/logger"
)

// maxCachedValue keeps single oversized entities out of the cache.
const maxCachedValue = 1024 * 1024

// CacheService stores single entity lookups as JSON. A nil store disables
// caching; failures are logged and treated as misses.
type CacheService struct {
	store cache.Store
	ttl   time.Duration
}

func NewCacheService(store cache.Store, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CacheService{store: store, ttl: ttl}
}

func (s *CacheService) Enabled() bool {
	return s != nil && s.store != nil
}

func SupplierCacheKey(id int) string {
	return fmt.Sprintf("%s%d", constants.CacheKeySupplier, id)
}

func SupplierCategoryCacheKey(id int) string {
	return fmt.Sprintf("%s%d", constants.CacheKeySupplierCategory, id)
}

func SupplierTransactionCacheKey(supplierID, id int) string {
	return fmt.Sprintf("%s%d:%d", constants.CacheKeySupplierTransaction, supplierID, id)
}

// Get decodes the cached value of key into dest and reports a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest any) bool {
	if !s.Enabled() {
		return false
	}

	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		logger.GetLogger().Warn("Failed to read cache",
			zap.String("cache_key", key),
			zap.String("store", s.store.Name()),
			zap.Error(err),
		)
		return false
	}
	if !ok {
		logger.LogCache("get", key, false)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.GetLogger().Warn("Discarding undecodable cache entry",
			zap.String("cache_key", key),
			zap.Error(err),
		)
		_ = s.store.Delete(ctx, key)
		return false
	}

	logger.LogCache("get", key, true, zap.Int("data_size", len(data)))
	return true
}

func (s *CacheService) Set(ctx context.Context, key string, value any) {
	if !s.Enabled() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().Error("Failed to encode cache entry", zap.String("cache_key", key), zap.Error(err))
		return
	}
	if len(data) > maxCachedValue {
		logger.GetLogger().Debug("Skipping cache for large value",
			zap.String("cache_key", key),
			zap.Int("data_size", len(data)),
		)
		return
	}

	if err := s.store.Set(ctx, key, data, s.ttl); err != nil {
		logger.GetLogger().Error("Failed to write cache",
			zap.String("cache_key", key),
			zap.Duration("ttl", s.ttl),
			zap.Error(err),
		)
		return
	}
	logger.LogCache("set", key, false, zap.Duration("ttl", s.ttl))
}

// Invalidate removes keys.
func (s *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if !s.Enabled() || len(keys) == 0 {
		return
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		logger.GetLogger().Error("Failed to invalidate cache", zap.Strings("cache_keys", keys), zap.Error(err))
	}
}

// InvalidatePrefix removes every key starting with prefix, used when a
// cascading delete touches entities that are not individually known.
func (s *CacheService) InvalidatePrefix(ctx context.Context, prefix string) {
	if !s.Enabled() {
		return
	}
	if err := s.store.DeleteByPrefix(ctx, prefix); err != nil {
		logger.GetLogger().Error("Failed to invalidate cache prefix", zap.String("prefix", prefix), zap.Error(err))
	}
}

// ClearAll drops every entry this service wrote.
func (s *CacheService) ClearAll(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.store.DeleteByPrefix(ctx, constants.CacheKeyPrefix)
}

// Ping checks the backing store.
func (s *CacheService) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.store.Ping(ctx)
}

// Stats describes the cache for the admin endpoint.
func (s *CacheService) Stats(ctx context.Context) map[string]any {
	if !s.Enabled() {
		return map[string]any{"enabled": false}
	}

	stats := map[string]any{
		"enabled": true,
		"store":   s.store.Name(),
		"ttl":     s.ttl.String(),
	}
	if err := s.store.Ping(ctx); err != nil {
		stats["status"] = "unhealthy"
		stats["error"] = err.Error()
	} else {
		stats["status"] = "healthy"
	}

	store := s.store
	if guarded, ok := store.(*cache.GuardedStore); ok {
		stats["circuit"] = guarded.CircuitStats()
		store = guarded.Unwrap()
	}

	switch st := store.(type) {
	case interface{ PoolStats() map[string]interface{} }:
		stats["pool"] = st.PoolStats()
	case interface{ Len() int }:
		stats["items"] = st.Len()
	}
	return stats
}
