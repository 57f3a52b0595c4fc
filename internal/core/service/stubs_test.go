package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kambaz/kambaz-api/internal/core/domain"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

// In-memory doubles for the repository and session ports, shared by the
// service tests.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, exists := r.users[u.ID]; exists {
		return nil, domain.ErrUserIDExists
	}
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindByPartialName(_ context.Context, part string) ([]domain.User, error) {
	part = strings.ToLower(part)
	out := []domain.User{}
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.FirstName), part) ||
			strings.Contains(strings.ToLower(u.LastName), part) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	merged := applyPatch(*u, patch)
	r.users[id] = &merged
	return 1, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

type stubEnrollmentRepo struct {
	rows    []domain.Enrollment
	failing bool
}

func (r *stubEnrollmentRepo) Enroll(_ context.Context, userID, courseID string) (*domain.Enrollment, error) {
	if r.failing {
		return nil, &domain.StoreError{Op: "insert enrollment", Err: errors.New("write refused")}
	}
	e := domain.Enrollment{
		ID:     fmt.Sprintf("e%d", len(r.rows)+1),
		User:   userID,
		Course: courseID,
	}
	r.rows = append(r.rows, e)
	return &e, nil
}

type stubCourseRepo struct {
	courses     map[string]*domain.Course
	enrollments *stubEnrollmentRepo
	modules     map[string][]domain.Module
	nextID      int
}

func newStubCourseRepo(enrollments *stubEnrollmentRepo) *stubCourseRepo {
	return &stubCourseRepo{
		courses:     make(map[string]*domain.Course),
		enrollments: enrollments,
		modules:     make(map[string][]domain.Module),
	}
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.nextID++
	c.ID = fmt.Sprintf("c%d", r.nextID)
	clone := *c
	r.courses[c.ID] = &clone
	return c, nil
}

func (r *stubCourseRepo) FindAll(_ context.Context) ([]domain.Course, error) {
	out := []domain.Course{}
	for _, c := range r.courses {
		course := *c
		course.Modules = r.modules[c.ID]
		out = append(out, course)
	}
	return out, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	course := *c
	course.Modules = r.modules[id]
	return &course, nil
}

func (r *stubCourseRepo) FindForEnrolledUser(_ context.Context, userID string) ([]domain.Course, error) {
	out := []domain.Course{}
	for _, c := range r.courses {
		for _, e := range r.enrollments.rows {
			if e.User == userID && e.Course == c.ID {
				course := *c
				course.Enrolled = true
				out = append(out, course)
				break
			}
		}
	}
	return out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, id string, patch ports.CoursePatch) (int64, error) {
	c, ok := r.courses[id]
	if !ok {
		return 0, nil
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Author != nil {
		c.Author = *patch.Author
	}
	return 1, nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.courses[id]; !ok {
		return 0, nil
	}
	delete(r.courses, id)
	return 1, nil
}

type stubModuleRepo struct {
	modules map[string]*domain.Module
	nextID  int
}

func newStubModuleRepo() *stubModuleRepo {
	return &stubModuleRepo{modules: make(map[string]*domain.Module)}
}

func (r *stubModuleRepo) Create(_ context.Context, m *domain.Module) (*domain.Module, error) {
	r.nextID++
	m.ID = fmt.Sprintf("m%d", r.nextID)
	clone := *m
	r.modules[m.ID] = &clone
	return m, nil
}

func (r *stubModuleRepo) FindForCourse(_ context.Context, courseID string) ([]domain.Module, error) {
	out := []domain.Module{}
	for _, m := range r.modules {
		if m.Course == courseID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubModuleRepo) Update(_ context.Context, id string, patch ports.ModulePatch) (int64, error) {
	m, ok := r.modules[id]
	if !ok {
		return 0, nil
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Course != nil {
		m.Course = *patch.Course
	}
	return 1, nil
}

func (r *stubModuleRepo) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.modules[id]; !ok {
		return 0, nil
	}
	delete(r.modules, id)
	return 1, nil
}

type stubSessionStore struct {
	sessions map[string]*domain.Session
	nextID   int
	failing  bool
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, user domain.User) (string, error) {
	if s.failing {
		return "", errors.New("session backend down")
	}
	s.nextID++
	token := fmt.Sprintf("tok%d", s.nextID)
	s.sessions[token] = &domain.Session{Token: token, User: user}
	return token, nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Update(_ context.Context, token string, user domain.User) error {
	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	sess.User = user
	return nil
}

func (s *stubSessionStore) Destroy(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}
