package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kambaz/kambaz-api/internal/core/domain"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

// CourseService implements catalog use cases over the course repository.
type CourseService struct {
	courses ports.CourseRepository
	logger  zerolog.Logger
}

func NewCourseService(courses ports.CourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, logger: logger}
}

// ListAll returns every course with modules populated.
func (s *CourseService) ListAll(ctx context.Context) ([]domain.Course, error) {
	return s.courses.FindAll(ctx)
}

// GetByID returns one course with modules populated, or
// domain.ErrCourseNotFound when no document matches.
func (s *CourseService) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	return s.courses.FindByID(ctx, id)
}

// Create inserts a course. Any caller-supplied id is discarded; the store
// assigns identity.
func (s *CourseService) Create(ctx context.Context, in ports.CourseInput, author string) (*domain.Course, error) {
	course := courseFromInput(in)
	course.Author = author

	created, err := s.courses.Create(ctx, course)
	if err != nil {
		s.logger.Error().Err(err).Str("title", in.Title).Msg("course create failed")
		return nil, err
	}
	s.logger.Info().Str("course_id", created.ID).Str("title", created.Title).Msg("course created")
	return created, nil
}

// Update shallow-merges patch into the stored document. Updating a missing
// id is a zero-matched no-op, not an error.
func (s *CourseService) Update(ctx context.Context, id string, patch ports.CoursePatch) (int64, error) {
	return s.courses.Update(ctx, id, patch)
}

// Delete removes by id; deleting a missing id is a zero-effect no-op.
func (s *CourseService) Delete(ctx context.Context, id string) (int64, error) {
	return s.courses.Delete(ctx, id)
}
