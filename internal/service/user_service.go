package service

import (
	"context"
	"strings"

	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/session"
	apperrors "github.com/spec-kit/leave-portal/pkg/util"
)

// UserService fronts the backend's user records: admin management plus the
// profile view every role gets.
type UserService struct {
	api   backend.UserAPI
	store session.Store
}

// NewUserService constructs the service.
func NewUserService(api backend.UserAPI, store session.Store) *UserService {
	return &UserService{api: api, store: store}
}

// List returns all user records; managers and admins only.
func (s *UserService) List(ctx context.Context, actor domain.User) ([]domain.User, error) {
	if !actor.Role.CanDecide() {
		return nil, apperrors.NewForbidden("manager or admin role required")
	}
	return s.api.ListUsers(ctx)
}

// Get returns one user record: anyone may fetch themselves, managers and
// admins anyone.
func (s *UserService) Get(ctx context.Context, actor domain.User, id int64) (*domain.User, error) {
	if id != actor.ID && !actor.Role.CanDecide() {
		return nil, apperrors.NewForbidden("not your profile")
	}
	return s.api.GetUser(ctx, id)
}

// Create adds a user record; admins only.
func (s *UserService) Create(ctx context.Context, actor domain.User, req backend.UpsertUserRequest) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, apperrors.NewValidationError("name and email are required", nil)
	}
	if !req.Role.Known() {
		return nil, apperrors.NewValidationError("unrecognized role", map[string]any{"role": req.Role})
	}
	return s.api.CreateUser(ctx, req)
}

// Update replaces a user record's mutable fields; admins only.
func (s *UserService) Update(ctx context.Context, actor domain.User, id int64, req backend.UpsertUserRequest) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if !req.Role.Known() {
		return nil, apperrors.NewValidationError("unrecognized role", map[string]any{"role": req.Role})
	}
	return s.api.UpdateUser(ctx, id, req)
}

// Delete removes a user record; admins only.
func (s *UserService) Delete(ctx context.Context, actor domain.User, id int64) error {
	if actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return s.api.DeleteUser(ctx, id)
}

// UpdateProfile renames the calling user. Only the name is editable from the
// profile view; email and role are forwarded unchanged, and the cached
// session user is updated with the new name so the header reflects it
// without a re-login.
func (s *UserService) UpdateProfile(ctx context.Context, sess domain.Session, sessionID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	actor := sess.User

	updated, err := s.api.UpdateUser(ctx, actor.ID, backend.UpsertUserRequest{
		Name:  name,
		Email: actor.Email,
		Role:  actor.Role,
	})
	if err != nil {
		return nil, err
	}

	cached := *actor
	cached.Name = updated.Name
	if cached.Name == "" {
		cached.Name = name
	}
	if err := s.store.Save(ctx, sessionID, sess.Token, &cached); err != nil {
		return nil, err
	}
	return updated, nil
}
