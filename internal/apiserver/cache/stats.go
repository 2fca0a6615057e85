package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/payment"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// statsEntry is an L1 item with its expiry
type statsEntry struct {
	stats     *payment.Statistics
	expiresAt time.Time
}

// StatsCacheConfig holds configuration for the statistics cache.
// RedisClient is optional; without it the cache runs memory-only.
type StatsCacheConfig struct {
	RedisClient redis.Cmdable
	KeyPrefix   string
	L1TTL       time.Duration
	L2TTL       time.Duration
}

// StatsCache caches computed payment statistics in two layers: an
// in-process map (L1) and Redis (L2). Any payment mutation invalidates
// the whole cache, so a stale projection never outlives a write by more
// than one invalidation round trip.
type StatsCache struct {
	logger    *zap.Logger
	l2        redis.Cmdable
	keyPrefix string
	l1TTL     time.Duration
	l2TTL     time.Duration

	mu sync.RWMutex
	l1 map[string]*statsEntry
}

// NewStatsCache creates a statistics cache
func NewStatsCache(cfg StatsCacheConfig, logger *zap.Logger) *StatsCache {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "bllokusync:stats:"
	}
	if cfg.L1TTL == 0 {
		cfg.L1TTL = time.Minute
	}
	if cfg.L2TTL == 0 {
		cfg.L2TTL = 5 * time.Minute
	}
	return &StatsCache{
		logger:    logger.Named("cache.stats"),
		l2:        cfg.RedisClient,
		keyPrefix: cfg.KeyPrefix,
		l1TTL:     cfg.L1TTL,
		l2TTL:     cfg.L2TTL,
		l1:        make(map[string]*statsEntry),
	}
}

// Key builds a cache key from the canonical record filter. Every filter
// dimension participates so projections for different record sets never
// collapse onto one entry.
func (sc *StatsCache) Key(filter database.PaymentFilter) string {
	return fmt.Sprintf("p%d:t%d:y%d:m%s:s%s",
		filter.PropertyID, filter.TenantID, filter.Year,
		strings.Join(filter.Months, ","), filter.Status)
}

// Get returns the cached statistics for key, checking L1 first, then L2.
// An L2 hit is promoted back into L1.
func (sc *StatsCache) Get(ctx context.Context, key string) (*payment.Statistics, bool) {
	sc.mu.RLock()
	entry, ok := sc.l1[key]
	sc.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.stats, true
	}

	if sc.l2 == nil {
		return nil, false
	}

	raw, err := sc.l2.Get(ctx, sc.keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			sc.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var stats payment.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		sc.logger.Warn("corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	sc.mu.Lock()
	sc.l1[key] = &statsEntry{stats: &stats, expiresAt: time.Now().Add(sc.l1TTL)}
	sc.mu.Unlock()
	return &stats, true
}

// Set stores statistics in both layers
func (sc *StatsCache) Set(ctx context.Context, key string, stats *payment.Statistics) {
	sc.mu.Lock()
	sc.l1[key] = &statsEntry{stats: stats, expiresAt: time.Now().Add(sc.l1TTL)}
	sc.mu.Unlock()

	if sc.l2 == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		sc.logger.Warn("failed to marshal statistics", zap.String("key", key), zap.Error(err))
		return
	}
	if err := sc.l2.Set(ctx, sc.keyPrefix+key, raw, sc.l2TTL).Err(); err != nil {
		sc.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached projection. Called after any payment
// mutation; statistics are cheap to recompute so correctness wins over
// selective eviction.
func (sc *StatsCache) Invalidate(ctx context.Context) {
	sc.mu.Lock()
	sc.l1 = make(map[string]*statsEntry)
	sc.mu.Unlock()

	if sc.l2 == nil {
		return
	}
	iter := sc.l2.Scan(ctx, 0, sc.keyPrefix+"*", 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		sc.logger.Warn("redis scan failed during invalidation", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := sc.l2.Del(ctx, keys...).Err(); err != nil {
			sc.logger.Warn("redis delete failed during invalidation", zap.Error(err))
		}
	}
}
