package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the HTTP-only cookie holding the opaque session ID.
const CookieName = "session"

// DefaultSessionTTL mirrors the original five-day session cookie lifetime.
const DefaultSessionTTL = 5 * 24 * time.Hour

const sessionKeyPrefix = "session:"

// SessionStore keeps signed tokens server side, keyed by an opaque ID, so a
// guard failure can invalidate the session (forced logout) without waiting
// for the token to expire.
type SessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func (s SessionStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// Create stores the signed token and returns the new session ID.
func (s SessionStore) Create(ctx context.Context, token string) (string, error) {
	sid := uuid.NewString()
	if err := s.Client.Set(ctx, sessionKeyPrefix+sid, token, s.ttl()).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

// Get returns the signed token for the session, or redis.Nil when the
// session does not exist (expired or destroyed).
func (s SessionStore) Get(ctx context.Context, sid string) (string, error) {
	return s.Client.Get(ctx, sessionKeyPrefix+sid).Result()
}

// Destroy removes the session. Destroying a missing session is not an error.
func (s SessionStore) Destroy(ctx context.Context, sid string) error {
	err := s.Client.Del(ctx, sessionKeyPrefix+sid).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}
