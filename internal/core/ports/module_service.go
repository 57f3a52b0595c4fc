package ports

import (
	"context"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

// ModuleInput carries the writable fields of a module.
type ModuleInput struct {
	Name        string
	Description string
	Course      string
}

// ModuleService defines module use cases. Updates are written through the
// persistence layer like every other operation.
type ModuleService interface {
	ListForCourse(ctx context.Context, courseID string) ([]domain.Module, error)
	Create(ctx context.Context, in ModuleInput) (*domain.Module, error)
	Update(ctx context.Context, id string, patch ModulePatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
