package session

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/leave-portal/internal/domain"
)

// Store persists the session pair (bearer token, cached user) per session id.
//
// Load must tolerate the backing storage being absent, empty, or corrupt and
// yield an empty session rather than failing; only transport errors are
// returned. Clear is idempotent.
type Store interface {
	Load(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, id string, token string, user *domain.User) error
	Clear(ctx context.Context, id string) error
}

// encodeUser serializes the cached profile for storage.
func encodeUser(user *domain.User) string {
	if user == nil {
		return ""
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return ""
	}
	return string(raw)
}

// decodeUser parses a stored profile defensively. The browser client this
// portal replaces was known to persist the literal string "undefined"; that
// and any other malformed value decode to a nil user, never an error.
func decodeUser(raw string) *domain.User {
	if raw == "" || raw == "undefined" || raw == "null" {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}
