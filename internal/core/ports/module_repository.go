package ports

import (
	"context"

	"github.com/kambaz/kambaz-api/internal/core/domain"
)

// ModulePatch carries a shallow partial update of a module document.
type ModulePatch struct {
	Name        *string
	Description *string
	Course      *string
}

// ModuleRepository defines persistence operations for course modules.
type ModuleRepository interface {
	Create(ctx context.Context, m *domain.Module) (*domain.Module, error)
	FindForCourse(ctx context.Context, courseID string) ([]domain.Module, error)
	Update(ctx context.Context, id string, patch ModulePatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
