package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/payment"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleStats() *payment.Statistics {
	stats := &payment.Statistics{}
	stats.Months[9].Total = payment.Tally{Count: 2, Amount: 125}
	stats.Months[9].Paid = payment.Tally{Count: 1, Amount: 50}
	stats.Months[9].Pending = payment.Tally{Count: 1, Amount: 75}
	stats.Total = payment.Tally{Count: 2, Amount: 125}
	return stats
}

func TestStatsCache_MemoryOnly(t *testing.T) {
	sc := NewStatsCache(StatsCacheConfig{}, zap.NewNop())
	ctx := context.Background()
	key := sc.Key(database.PaymentFilter{PropertyID: 1, Year: 2025})

	_, ok := sc.Get(ctx, key)
	assert.False(t, ok)

	sc.Set(ctx, key, sampleStats())
	got, ok := sc.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, 2, got.Total.Count)

	sc.Invalidate(ctx)
	_, ok = sc.Get(ctx, key)
	assert.False(t, ok)
}

func TestStatsCache_RedisRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sc := NewStatsCache(StatsCacheConfig{RedisClient: client, L1TTL: time.Millisecond}, zap.NewNop())
	ctx := context.Background()
	key := sc.Key(database.PaymentFilter{PropertyID: 2, Year: 2025, Status: "paid"})

	sc.Set(ctx, key, sampleStats())

	// Let the L1 entry expire so the read has to come from Redis.
	time.Sleep(5 * time.Millisecond)
	got, ok := sc.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, 125.0, got.Total.Amount)
	assert.Equal(t, payment.Tally{Count: 1, Amount: 50}, got.Months[9].Paid)
}

func TestStatsCache_InvalidateClearsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sc := NewStatsCache(StatsCacheConfig{RedisClient: client}, zap.NewNop())
	ctx := context.Background()

	sc.Set(ctx, sc.Key(database.PaymentFilter{PropertyID: 1, Year: 2025}), sampleStats())
	sc.Set(ctx, sc.Key(database.PaymentFilter{PropertyID: 2, Year: 2025}), sampleStats())

	sc.Invalidate(ctx)

	_, ok := sc.Get(ctx, sc.Key(database.PaymentFilter{PropertyID: 1, Year: 2025}))
	assert.False(t, ok)
	_, ok = sc.Get(ctx, sc.Key(database.PaymentFilter{PropertyID: 2, Year: 2025}))
	assert.False(t, ok)
	assert.Empty(t, mr.Keys())
}

func TestStatsCache_KeyDimensions(t *testing.T) {
	sc := NewStatsCache(StatsCacheConfig{}, zap.NewNop())
	base := database.PaymentFilter{PropertyID: 1, Year: 2025}

	assert.NotEqual(t, sc.Key(base), sc.Key(database.PaymentFilter{PropertyID: 1, Year: 2024}))
	assert.NotEqual(t, sc.Key(base), sc.Key(database.PaymentFilter{PropertyID: 2, Year: 2025}))
	assert.NotEqual(t,
		sc.Key(database.PaymentFilter{PropertyID: 1, Year: 2025, Status: "paid"}),
		sc.Key(database.PaymentFilter{PropertyID: 1, Year: 2025, Status: "pending"}))

	// A month-filtered request must never share an entry with the
	// unfiltered request for the same property, even though the month
	// filter zeroes the year out of the canonical filter.
	monthFiltered := database.PaymentFilter{PropertyID: 1, Months: []string{"2025-10-01"}}
	assert.NotEqual(t, sc.Key(base), sc.Key(monthFiltered))
	assert.NotEqual(t,
		sc.Key(monthFiltered),
		sc.Key(database.PaymentFilter{PropertyID: 1, Months: []string{"2025-01-01"}}))
}
