package service

import (
	"context"
	"strings"

	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/session"
	apperrors "github.com/spec-kit/leave-portal/pkg/util"
)

// AuthService bootstraps and tears down sessions against the backend's auth
// endpoints.
type AuthService struct {
	client *backend.Client
	store  session.Store
}

// NewAuthService constructs the service.
func NewAuthService(client *backend.Client, store session.Store) *AuthService {
	return &AuthService{client: client, store: store}
}

// Login exchanges credentials for a token and persists the session pair
// under the given session id.
func (s *AuthService) Login(ctx context.Context, sessionID, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password are required", nil)
	}

	resp, err := s.client.Login(ctx, backend.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:    resp.ID,
		Name:  resp.Username,
		Email: resp.Email,
		Role:  resp.Role,
	}
	if err := s.store.Save(ctx, sessionID, resp.Token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates an account and, when the backend returns a token,
// bootstraps the session the same way login does.
func (s *AuthService) Register(ctx context.Context, sessionID string, req backend.RegisterRequest) (*domain.User, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}
	if req.Role == "" {
		req.Role = domain.RoleEmployee
	}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:    resp.ID,
		Name:  resp.Username,
		Email: resp.Email,
		Role:  resp.Role,
	}
	if user.Name == "" {
		user.Name = req.Name
	}
	if resp.Token != "" {
		if err := s.store.Save(ctx, sessionID, resp.Token, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Logout clears the stored session; logging out twice is harmless.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}
