package websocket

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/robiulsunnyemon/eron/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, key *rsa.PrivateKey, sub string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token, err := utils.GenerateSign(&utils.Claims{
		Sub: sub,
		Iat: now.Unix(),
		Exp: now.Add(ttl).Unix(),
	}, key)
	require.NoError(t, err)
	return token
}

func TestJWTWebSocketAuth(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	auth := JWTWebSocketAuth(&key.PublicKey, rdb)

	require.NoError(t, mr.Set("session:u1", "1"))

	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/live/ws", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, key, "u1", time.Hour))

		userID, err := auth(r)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("query parameter", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/live/ws?token="+signToken(t, key, "u1", time.Hour), nil)

		userID, err := auth(r)
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("missing token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/live/ws", nil)

		_, err := auth(r)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/live/ws", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, key, "u1", -time.Hour))

		_, err := auth(r)
		assert.Error(t, err)
	})

	t.Run("revoked session", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/live/ws", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, key, "u2", time.Hour))

		_, err := auth(r)
		assert.Error(t, err, "no session key in Redis means the session was revoked")
	})

	t.Run("wrong key", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/api/v1/live/ws", nil)
		r.Header.Set("Authorization", "Bearer "+signToken(t, otherKey, "u1", time.Hour))

		_, authErr := auth(r)
		assert.Error(t, authErr)
	})
}
