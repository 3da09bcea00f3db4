package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/leave-portal/internal/domain"
)

const (
	keyPrefix  = "session:"
	fieldToken = "token"
	fieldUser  = "user"
)

// RedisStore keeps sessions in Redis so they survive portal restarts, the
// way the browser client kept them in localStorage across reloads.
type RedisStore struct {
	client *redis.Client
	ttl    TTLFunc
}

// TTLFunc derives a session lifetime from the stored token.
type TTLFunc func(token string) time.Duration

// NewRedisStore constructs a store. ttl may be nil, in which case sessions
// never expire on their own.
func NewRedisStore(client *redis.Client, ttl TTLFunc) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load fetches the session for the given id. A missing key or corrupt
// fields yield an empty session.
func (s *RedisStore) Load(ctx context.Context, id string) (domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, keyPrefix+id).Result()
	if err != nil {
		return domain.Session{}, err
	}
	sess := domain.Session{
		Token: fields[fieldToken],
		User:  decodeUser(fields[fieldUser]),
	}
	return sess, nil
}

// Save persists both fields in a single command so no caller observes a
// half-written session.
func (s *RedisStore) Save(ctx context.Context, id string, token string, user *domain.User) error {
	key := keyPrefix + id
	if err := s.client.HSet(ctx, key, fieldToken, token, fieldUser, encodeUser(user)).Err(); err != nil {
		return err
	}
	if s.ttl != nil {
		if ttl := s.ttl(token); ttl > 0 {
			return s.client.Expire(ctx, key, ttl).Err()
		}
	}
	return nil
}

// Clear removes the session; clearing an absent session is not an error.
func (s *RedisStore) Clear(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
