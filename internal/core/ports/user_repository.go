package ports

import (
	"context"
	"time"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

// UserPatch carries a partial update. Nil fields are left untouched; the
// merge is shallow, mirroring a $set write.
type UserPatch struct {
	Username      *string
	Password      *string // already hashed by the service layer
	FirstName     *string
	LastName      *string
	Email         *string
	Role          *domain.Role
	LoginID       *string
	Section       *string
	LastActivity  *time.Time
	TotalActivity *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts the user. Duplicate-key violations are mapped to
	// domain.ErrUsernameTaken or domain.ErrUserIDExists.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	// FindByPartialName matches the substring case-insensitively against
	// first or last name.
	FindByPartialName(ctx context.Context, part string) ([]domain.User, error)
	// Update applies patch by id and returns the matched count; updating a
	// missing id is a zero-matched no-op, not an error.
	Update(ctx context.Context, id string, patch UserPatch) (int64, error)
	// Delete removes by id and returns the deleted count.
	Delete(ctx context.Context, id string) (int64, error)
}
