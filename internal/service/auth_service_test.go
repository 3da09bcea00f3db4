package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/config"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/session"
)

func newAuthBackend(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, zap.NewNop(), nil, nil)
}

func TestLoginPersistsSession(t *testing.T) {
	client := newAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var req backend.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "amy", req.Username)
		_ = json.NewEncoder(w).Encode(backend.LoginResponse{
			ID: 7, Username: "amy", Email: "amy@example.com", Role: domain.RoleEmployee, Token: "tok-1",
		})
	})
	store := session.NewMemoryStore()
	svc := NewAuthService(client, store)
	ctx := context.Background()

	user, err := svc.Login(ctx, "sid-1", " amy ", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, domain.RoleEmployee, user.Role)

	sess, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, "amy", sess.User.Name)
}

func TestLoginValidation(t *testing.T) {
	svc := NewAuthService(nil, session.NewMemoryStore())

	_, err := svc.Login(context.Background(), "sid", "", "secret")
	assertErrorCode(t, err, "VALIDATION_FAILED")

	_, err = svc.Login(context.Background(), "sid", "amy", "")
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestLoginRejectedLeavesSessionEmpty(t *testing.T) {
	client := newAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
	})
	store := session.NewMemoryStore()
	svc := NewAuthService(client, store)
	ctx := context.Background()

	_, err := svc.Login(ctx, "sid-1", "amy", "wrong")
	assertErrorCode(t, err, "UPSTREAM_REJECTED")

	sess, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestRegisterDefaultsRoleAndBootstraps(t *testing.T) {
	var gotReq backend.RegisterRequest
	client := newAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(backend.LoginResponse{
			ID: 9, Username: "bob", Email: gotReq.Email, Role: gotReq.Role, Token: "tok-9",
		})
	})
	store := session.NewMemoryStore()
	svc := NewAuthService(client, store)
	ctx := context.Background()

	user, err := svc.Register(ctx, "sid-9", backend.RegisterRequest{
		Name: "bob", Email: "bob@example.com", Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, gotReq.Role)
	assert.Equal(t, int64(9), user.ID)

	sess, err := store.Load(ctx, "sid-9")
	require.NoError(t, err)
	assert.True(t, sess.Authenticated())
}

func TestRegisterWithoutTokenSkipsSession(t *testing.T) {
	client := newAuthBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(backend.LoginResponse{ID: 9, Username: "bob", Role: domain.RoleEmployee})
	})
	store := session.NewMemoryStore()
	svc := NewAuthService(client, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "sid-9", backend.RegisterRequest{
		Name: "bob", Email: "bob@example.com", Password: "secret",
	})
	require.NoError(t, err)

	sess, err := store.Load(ctx, "sid-9")
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestLogoutIdempotent(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewAuthService(nil, store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid", "tok", &domain.User{ID: 1, Role: domain.RoleAdmin}))
	require.NoError(t, svc.Logout(ctx, "sid"))
	require.NoError(t, svc.Logout(ctx, "sid"))

	sess, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}
