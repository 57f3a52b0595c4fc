package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kambaz/kambaz-api/internal/core/domain"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

// ModuleService implements module use cases. Unlike the system it replaces,
// every write here goes through the repository; module updates persist
// instead of mutating an in-memory snapshot.
type ModuleService struct {
	modules ports.ModuleRepository
	logger  zerolog.Logger
}

func NewModuleService(modules ports.ModuleRepository, logger zerolog.Logger) *ModuleService {
	return &ModuleService{modules: modules, logger: logger}
}

// ListForCourse returns all modules whose course field equals courseID.
func (s *ModuleService) ListForCourse(ctx context.Context, courseID string) ([]domain.Module, error) {
	return s.modules.FindForCourse(ctx, courseID)
}

// Create inserts a module. Any caller-supplied id is discarded.
func (s *ModuleService) Create(ctx context.Context, in ports.ModuleInput) (*domain.Module, error) {
	created, err := s.modules.Create(ctx, &domain.Module{
		Name:        in.Name,
		Description: in.Description,
		Course:      in.Course,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("course_id", in.Course).Msg("module create failed")
		return nil, err
	}
	s.logger.Info().Str("module_id", created.ID).Str("course_id", created.Course).Msg("module created")
	return created, nil
}

// Update writes the patch through the store and returns the matched count.
func (s *ModuleService) Update(ctx context.Context, id string, patch ports.ModulePatch) (int64, error) {
	return s.modules.Update(ctx, id, patch)
}

// Delete removes by id; a missing id is a zero-effect no-op.
func (s *ModuleService) Delete(ctx context.Context, id string) (int64, error) {
	return s.modules.Delete(ctx, id)
}
