package ports

import (
	"context"
	"time"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

// NewUserInput carries all data accepted at signup or admin user creation.
// ID, Username and Password are mandatory for signup; everything else is
// defaulted by the service.
type NewUserInput struct {
	ID            string
	Username      string
	Password      string
	FirstName     string
	LastName      string
	Email         string
	Role          string
	LoginID       string
	Section       string
	LastActivity  time.Time
	TotalActivity string
}

// UserFilterKind tags the listUsers filter variant.
type UserFilterKind int

const (
	FilterAll UserFilterKind = iota
	FilterByRole
	FilterByName
)

// UserFilter selects a subset of users. Role takes precedence over name when
// both query parameters are present, matching the original API.
type UserFilter struct {
	Kind     UserFilterKind
	Role     domain.Role
	NamePart string
}

// CourseInput carries the writable fields of a course.
type CourseInput struct {
	Title       string
	Number      string
	StartDate   string
	EndDate     string
	Department  string
	Credits     int
	Description string
}

// UserService defines the account, session and enrollment use cases.
type UserService interface {
	// Signup validates, defaults, and creates the account, establishes a
	// session, and returns the trimmed public projection plus the session
	// token.
	Signup(ctx context.Context, in NewUserInput) (*domain.PublicUser, string, error)
	// Signin verifies credentials and establishes a session. The session
	// write completes before the call returns.
	Signin(ctx context.Context, username, password string) (*domain.User, string, error)
	// Signout destroys the session unconditionally.
	Signout(ctx context.Context, token string) error
	// Profile re-fetches the session's user from the store, never the
	// cached snapshot.
	Profile(ctx context.Context, sess *domain.Session) (*domain.User, error)
	// CreateUser is the admin-style creation path: id generated when
	// absent, password hashed, no session established.
	CreateUser(ctx context.Context, in NewUserInput) (*domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]domain.User, error)
	// UpdateUser applies patch by id. When the caller edits their own
	// account, the live session snapshot is patched too.
	UpdateUser(ctx context.Context, sess *domain.Session, id string, patch UserPatch) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (int64, error)
	// CreateCourseForUser creates a course authored by the session user and
	// then enrolls them. The two steps are not atomic.
	CreateCourseForUser(ctx context.Context, sess *domain.Session, in CourseInput) (*domain.Course, error)
	// ListEnrolledCourses resolves the "current" sentinel against the
	// session and returns the courses joined against enrollments.
	ListEnrolledCourses(ctx context.Context, sess *domain.Session, userID string) ([]domain.Course, error)
}
