package ports

import (
	"context"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

// CourseService defines course catalog use cases.
type CourseService interface {
	ListAll(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	Create(ctx context.Context, in CourseInput, author string) (*domain.Course, error)
	// Update shallow-merges patch into the stored document and returns the
	// matched count; a missing id is a silent zero-matched no-op.
	Update(ctx context.Context, id string, patch CoursePatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
