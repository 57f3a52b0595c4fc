package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore holds server-side sessions in Redis, one JSON record per
// opaque token. Records expire after the configured TTL; Update keeps the
// remaining TTL so a profile edit does not extend the session.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create persists a new session snapshot for user and returns its token.
func (s *SessionStore) Create(ctx context.Context, user domain.User) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	sess := domain.Session{
		Token:     token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its session. Unknown or expired tokens return
// (nil, nil) so callers treat them as anonymous.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Update replaces the user snapshot of an existing session without touching
// its expiry. Updating an unknown token is a no-op.
func (s *SessionStore) Update(ctx context.Context, token string, user domain.User) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	sess.User = user
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, sessionKeyPrefix+token, data, redis.KeepTTL).Err()
}

// Destroy removes the session record. Destroying an unknown token succeeds.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}

// newToken returns a 128-bit random token in hex.
func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
