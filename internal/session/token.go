package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// expiredGrace bounds the lifetime of a session whose token has already
// expired. It only needs to survive long enough for the next backend 401 to
// clear it.
const expiredGrace = time.Minute

// TokenTTL builds a TTLFunc that reads the expiry claim out of the backend's
// bearer token. The token is opaque to the portal except for this hint: it is
// parsed without verification (only the backend holds the signing secret) and
// a token without a readable expiry falls back to the configured default
// lifetime. A token that is already expired gets expiredGrace, never the
// fallback, so the session cannot outlive its token by hours.
func TokenTTL(fallback time.Duration) TTLFunc {
	parser := jwt.NewParser()
	return func(token string) time.Duration {
		if token == "" {
			return fallback
		}
		claims := jwt.RegisteredClaims{}
		if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
			return fallback
		}
		if claims.ExpiresAt == nil {
			return fallback
		}
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl <= 0 {
			return expiredGrace
		}
		return ttl
	}
}
