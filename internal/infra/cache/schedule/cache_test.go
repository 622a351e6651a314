package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

func setupTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return NewCache(client, ttl, nopLogger{}), mr
}

func TestGetMissesOnEmptyCache(t *testing.T) {
	cache, _ := setupTestCache(t, time.Minute)

	cfg, ok := cache.Get(context.Background())

	assert.False(t, ok)
	assert.Nil(t, cfg)
}

func TestSetThenGetRoundTrip(t *testing.T) {
	cache, _ := setupTestCache(t, time.Minute)
	ctx := context.Background()

	stored := domain.DefaultScheduleConfig()
	stored.MaxDailyBookings = 7
	stored.PreventTimeConflicts = true
	cache.Set(ctx, stored)

	got, ok := cache.Get(ctx)

	require.True(t, ok)
	assert.Equal(t, 7, got.MaxDailyBookings)
	assert.True(t, got.PreventTimeConflicts)

	monday, found := got.TemplateFor(time.Monday)
	require.True(t, found)
	assert.True(t, monday.IsOpen)
	assert.Equal(t, "09:00", string(monday.OpenTime))
}

func TestInvalidateDropsEntry(t *testing.T) {
	cache, _ := setupTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, domain.DefaultScheduleConfig())
	cache.Invalidate(ctx)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestGetDropsCorruptEntry(t *testing.T) {
	cache, mr := setupTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, mr.Set(cacheKey, "{not json"))

	cfg, ok := cache.Get(ctx)

	assert.False(t, ok)
	assert.Nil(t, cfg)
	assert.False(t, mr.Exists(cacheKey), "corrupt entry should be deleted")
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	cache, mr := setupTestCache(t, 30*time.Second)
	ctx := context.Background()

	cache.Set(ctx, domain.DefaultScheduleConfig())

	_, ok := cache.Get(ctx)
	require.True(t, ok)

	mr.FastForward(31 * time.Second)

	_, ok = cache.Get(ctx)
	assert.False(t, ok)
}
