package session

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/leave-portal/internal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	user := &domain.User{ID: 7, Name: "amy", Email: "amy@example.com", Role: domain.RoleEmployee}

	require.NoError(t, store.Save(ctx, "sid-1", "tok-1", user))

	sess, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, *user, *sess.User)
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	sess, err := NewMemoryStore().Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Token)
	assert.Nil(t, sess.User)
}

func TestMemoryStoreClearIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, "sid-1", "tok", &domain.User{ID: 1, Role: domain.RoleAdmin}))

	require.NoError(t, store.Clear(ctx, "sid-1"))
	require.NoError(t, store.Clear(ctx, "sid-1"))

	sess, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestLoadToleratesCorruptUser(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"undefined", "null", "", "{not json"} {
		store := NewMemoryStore()
		require.NoError(t, store.Save(ctx, "sid", "tok", &domain.User{ID: 3, Role: domain.RoleManager}))
		store.Corrupt("sid", raw)

		sess, err := store.Load(ctx, "sid")
		require.NoError(t, err, "raw=%q", raw)
		assert.Nil(t, sess.User, "raw=%q", raw)
		assert.False(t, sess.Authenticated(), "raw=%q", raw)
	}
}

func TestTokenTTLFromExpiry(t *testing.T) {
	fallback := 30 * time.Minute
	ttl := TokenTTL(fallback)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
	}).SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)

	got := ttl(token)
	assert.Greater(t, got, time.Hour)
	assert.LessOrEqual(t, got, 2*time.Hour)
}

func TestTokenTTLFallbacks(t *testing.T) {
	fallback := 30 * time.Minute
	ttl := TokenTTL(fallback)

	assert.Equal(t, fallback, ttl(""))
	assert.Equal(t, fallback, ttl("garbage"))

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "7"}).
		SignedString([]byte("s"))
	require.NoError(t, err)
	assert.Equal(t, fallback, ttl(noExpiry))
}

func TestTokenTTLClampsExpiredToken(t *testing.T) {
	fallback := 12 * time.Hour
	ttl := TokenTTL(fallback)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("s"))
	require.NoError(t, err)

	// An already-expired token must not earn the full default lifetime.
	got := ttl(expired)
	assert.Equal(t, expiredGrace, got)
	assert.Less(t, got, fallback)
}

func TestContextID(t *testing.T) {
	ctx := context.Background()

	_, ok := IDFromContext(ctx)
	assert.False(t, ok)

	id, ok := IDFromContext(ContextWithID(ctx, "sid-9"))
	assert.True(t, ok)
	assert.Equal(t, "sid-9", id)
}
