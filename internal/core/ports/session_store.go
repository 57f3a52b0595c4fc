package ports

import (
	"context"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

// SessionStore holds server-side sessions addressed by opaque tokens.
type SessionStore interface {
	// Create persists a new session snapshot for user and returns its token.
	Create(ctx context.Context, user domain.User) (string, error)
	// Get resolves a token to its session, or (nil, nil) when the token is
	// unknown or expired.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Update replaces the user snapshot of an existing session, keeping its
	// expiry.
	Update(ctx context.Context, token string, user domain.User) error
	// Destroy removes the session. Destroying an unknown token succeeds.
	Destroy(ctx context.Context, token string) error
}
