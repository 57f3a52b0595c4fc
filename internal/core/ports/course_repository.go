package ports

import (
	"context"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

// CoursePatch carries a shallow partial update of a course document.
type CoursePatch struct {
	Title       *string
	Number      *string
	StartDate   *string
	EndDate     *string
	Department  *string
	Credits     *int
	Description *string
	Author      *string
}

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	// Create inserts the course; any caller-supplied id is discarded and
	// the store assigns identity.
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	// FindAll returns every course with its modules populated.
	FindAll(ctx context.Context) ([]domain.Course, error)
	// FindByID returns one course with modules populated, or
	// domain.ErrCourseNotFound.
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	// FindForEnrolledUser returns the courses having at least one
	// enrollment row for userID, each marked Enrolled.
	FindForEnrolledUser(ctx context.Context, userID string) ([]domain.Course, error)
	Update(ctx context.Context, id string, patch CoursePatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
