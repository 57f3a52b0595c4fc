package ports

import (
	"context"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

// EnrollmentRepository defines persistence operations for enrollments.
// Enroll does not deduplicate (user, course) pairs.
type EnrollmentRepository interface {
	Enroll(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
}
