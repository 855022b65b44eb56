package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/robiulsunnyemon/eron/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCacheRoundTrip(t *testing.T) {
	_, rdb := testRedis(t)
	ctx := context.Background()

	user := &entity.User{ID: "u1", FirstName: "Alice", Coins: 42}
	require.NoError(t, SetCacheData(ctx, rdb, "profile:u1", user, 5*time.Minute))

	got, appErr := GetCacheData[entity.User](ctx, rdb, "profile:u1")
	require.Nil(t, appErr)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.FirstName)
	assert.Equal(t, int64(42), got.Coins)
}

func TestCacheMissReturnsNilNil(t *testing.T) {
	_, rdb := testRedis(t)

	got, appErr := GetCacheData[entity.User](context.Background(), rdb, "profile:missing")
	assert.Nil(t, appErr)
	assert.Nil(t, got)
}

func TestCacheExpiry(t *testing.T) {
	mr, rdb := testRedis(t)
	ctx := context.Background()

	user := &entity.User{ID: "u1"}
	require.NoError(t, SetCacheData(ctx, rdb, "profile:u1", user, time.Minute))

	mr.FastForward(2 * time.Minute)

	got, appErr := GetCacheData[entity.User](ctx, rdb, "profile:u1")
	assert.Nil(t, appErr)
	assert.Nil(t, got)
}

func TestDeleteCacheData(t *testing.T) {
	_, rdb := testRedis(t)
	ctx := context.Background()

	user := &entity.User{ID: "u1"}
	require.NoError(t, SetCacheData(ctx, rdb, "profile:u1", user, time.Minute))
	require.NoError(t, DeleteCacheData(ctx, rdb, "profile:u1"))

	got, appErr := GetCacheData[entity.User](ctx, rdb, "profile:u1")
	assert.Nil(t, appErr)
	assert.Nil(t, got)
}
