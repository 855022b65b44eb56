package websocket

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/robiulsunnyemon/eron/internal/utils"
)

// AuthenticatorFunc resolves an opaque bearer token carried by the handshake
// request into a user ID.
type AuthenticatorFunc func(r *http.Request) (userID string, err error)

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// JWTWebSocketAuth verifies the RSA-signed access token and requires a live
// session key in Redis. Token refresh cannot happen during a ws handshake;
// clients refresh over HTTP and reconnect.
func JWTWebSocketAuth(publicKey *rsa.PublicKey, rdb *redis.Client) AuthenticatorFunc {
	return func(r *http.Request) (string, error) {
		token := getTokenFromRequest(r)
		if token == "" {
			return "", &AuthError{Message: "missing access token"}
		}

		claims, err := utils.ParseAndVerifySign(token, publicKey)
		if err != nil {
			return "", &AuthError{Message: "invalid or expired token"}
		}

		if rdb != nil {
			sessionKey := fmt.Sprintf("session:%s", claims.Sub)
			exists, err := rdb.Exists(context.Background(), sessionKey).Result()
			if err != nil || exists == 0 {
				return "", &AuthError{Message: "session not found or revoked"}
			}
		}

		return claims.Sub, nil
	}
}

func getTokenFromRequest(r *http.Request) string {
	// Option 1: Authorization header
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Option 2: Query parameter
	token := r.URL.Query().Get("token")
	if token != "" {
		return token
	}

	// Option 3: Cookie
	cookie, err := r.Cookie("access_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
