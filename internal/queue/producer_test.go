package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueue_ScoresByPriorityThenDeadline(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	producer := NewProducer(rdb)
	ctx := context.Background()

	now := time.Now()
	urgent := Job{
		ID:       uuid.New().String(),
		Type:     JobRoomCleanup,
		Priority: 1,
		MaxRetry: 3,
		ExpireAt: now.Add(5 * time.Minute).Unix(),
	}
	routine := Job{
		ID:       uuid.New().String(),
		Type:     JobRoomCleanup,
		Priority: 2,
		MaxRetry: 3,
		ExpireAt: now.Add(time.Minute).Unix(),
	}

	require.NoError(t, producer.Enqueue(ctx, routine))
	require.NoError(t, producer.Enqueue(ctx, urgent))

	// lowest score first: priority dominates the deadline
	members, err := rdb.ZRangeByScore(ctx, QueueKey, &redis.ZRangeBy{Min: "-inf", Max: "+inf"}).Result()
	require.NoError(t, err)
	require.Len(t, members, 2)

	var first Job
	require.NoError(t, json.Unmarshal([]byte(members[0]), &first))
	assert.Equal(t, urgent.ID, first.ID)
}

func TestMustMarshal(t *testing.T) {
	raw := MustMarshal(map[string]string{"room_id": "r1"})
	require.NotNil(t, raw)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "r1", decoded["room_id"])
}
