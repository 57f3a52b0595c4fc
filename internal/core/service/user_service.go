package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/kambaz/kambaz-api/internal/core/domain"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

// currentUserSentinel is the userId path value resolved against the session.
const currentUserSentinel = "current"

// UserService implements account, session, and enrollment use cases.
type UserService struct {
	users       ports.UserRepository
	courses     ports.CourseRepository
	enrollments ports.EnrollmentRepository
	sessions    ports.SessionStore
	logger      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	courses ports.CourseRepository,
	enrollments ports.EnrollmentRepository,
	sessions ports.SessionStore,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		sessions:    sessions,
		logger:      logger,
	}
}

// Signup validates the candidate, runs the username and id existence checks
// concurrently, applies defaults, and creates the account. A session is
// established before returning; the caller receives the trimmed public
// projection and the session token.
func (s *UserService) Signup(ctx context.Context, in ports.NewUserInput) (*domain.PublicUser, string, error) {
	if in.ID == "" || in.Username == "" || in.Password == "" {
		return nil, "", domain.ErrSignupFields
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.users.FindByUsername(gctx, in.Username)
		if err == nil {
			return domain.ErrUsernameTaken
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		_, err := s.users.FindByID(gctx, in.ID)
		if err == nil {
			return domain.ErrUserIDExists
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	user, err := s.buildUser(in)
	if err != nil {
		return nil, "", err
	}

	// The duplicate-key race between the checks above and this insert is
	// resolved by the repository, which maps the store's duplicate-key
	// error to the same conflict errors.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", in.Username).Msg("signup failed")
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, *created)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", created.ID).Msg("session create failed")
		return nil, "", domain.ErrSessionSave
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user signed up")

	return created.Public(), token, nil
}

// Signin verifies the credentials against the stored hash and establishes a
// session. The session write is a must-complete-before-reply step; its
// failure surfaces as domain.ErrSessionSave.
func (s *UserService) Signin(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.logger.Info().Str("username", username).Msg("invalid credentials")
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, *user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("session create failed")
		return nil, "", domain.ErrSessionSave
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", username).Msg("user signed in")

	return user, token, nil
}

// Signout destroys the session. Always succeeds from the caller's view.
func (s *UserService) Signout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		s.logger.Warn().Err(err).Msg("session destroy failed")
	}
	return nil
}

// Profile re-fetches the session's user by id from the store rather than
// trusting the possibly stale session snapshot.
func (s *UserService) Profile(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.FindByID(ctx, sess.User.ID)
}

// CreateUser is the admin-style creation path: the id is generated when the
// caller does not supply one and no session is established.
func (s *UserService) CreateUser(ctx context.Context, in ports.NewUserInput) (*domain.User, error) {
	user, err := s.buildUser(in)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, user)
}

func (s *UserService) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ListUsers applies the tagged filter variant. Precedence between role and
// name filters is decided by the caller when parsing the query.
func (s *UserService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]domain.User, error) {
	switch filter.Kind {
	case ports.FilterByRole:
		return s.users.FindByRole(ctx, filter.Role)
	case ports.FilterByName:
		return s.users.FindByPartialName(ctx, filter.NamePart)
	default:
		return s.users.FindAll(ctx)
	}
}

// UpdateUser applies an unconditional partial update by id. When the caller
// edits their own account the patch is merged into the live session snapshot
// so subsequent reads reflect it without a fresh fetch.
func (s *UserService) UpdateUser(ctx context.Context, sess *domain.Session, id string, patch ports.UserPatch) (*domain.User, error) {
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hashed := string(hash)
		patch.Password = &hashed
	}

	if _, err := s.users.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	if sess != nil && sess.User.ID == id {
		merged := applyPatch(sess.User, patch)
		if err := s.sessions.Update(ctx, sess.Token, merged); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("session merge failed")
		}
		sess.User = merged
		return &merged, nil
	}

	return s.users.FindByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (int64, error) {
	return s.users.Delete(ctx, id)
}

// CreateCourseForUser creates a course owned by the session user, then
// enrolls them in it. The two steps are deliberately not atomic: if the
// enrollment insert fails the course persists without it and the error is
// returned.
func (s *UserService) CreateCourseForUser(ctx context.Context, sess *domain.Session, in ports.CourseInput) (*domain.Course, error) {
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}

	course := courseFromInput(in)
	course.Author = sess.User.ID

	created, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	if _, err := s.enrollments.Enroll(ctx, sess.User.ID, created.ID); err != nil {
		s.logger.Error().Err(err).
			Str("user_id", sess.User.ID).
			Str("course_id", created.ID).
			Msg("course created but enrollment failed")
		return nil, err
	}

	s.logger.Info().Str("user_id", sess.User.ID).Str("course_id", created.ID).Msg("course created and author enrolled")
	return created, nil
}

// ListEnrolledCourses resolves the "current" sentinel against the session
// and runs the enrollment join for the resulting user id.
func (s *UserService) ListEnrolledCourses(ctx context.Context, sess *domain.Session, userID string) ([]domain.Course, error) {
	if userID == currentUserSentinel {
		if sess == nil {
			return nil, domain.ErrUnauthenticated
		}
		userID = sess.User.ID
	}
	return s.courses.FindForEnrolledUser(ctx, userID)
}

// buildUser hashes the password and fills defaults for every optional field.
func (s *UserService) buildUser(in ports.NewUserInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := domain.RoleUser
	if in.Role != "" {
		role = domain.Role(in.Role)
		if !role.Valid() {
			return nil, domain.ErrInvalidRole
		}
	}

	loginID := in.LoginID
	if loginID == "" {
		loginID = generateLoginID()
	}
	section := in.Section
	if section == "" {
		section = "default"
	}
	lastActivity := in.LastActivity
	if lastActivity.IsZero() {
		lastActivity = time.Now().UTC()
	}
	totalActivity := in.TotalActivity
	if totalActivity == "" {
		totalActivity = "0"
	}

	return &domain.User{
		ID:            in.ID,
		Username:      in.Username,
		Password:      string(hash),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Role:          role,
		LoginID:       loginID,
		Section:       section,
		LastActivity:  lastActivity,
		TotalActivity: totalActivity,
	}, nil
}

// generateLoginID returns a default login id in the format user_XXXXXXX.
func generateLoginID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("user_%07x", time.Now().UnixNano()&0xFFFFFFF)
	}
	return fmt.Sprintf("user_%02x%02x%02x%01x", b[0], b[1], b[2], b[3]>>4)
}

// applyPatch shallow-merges patch onto base, mirroring the store-side $set.
func applyPatch(base domain.User, patch ports.UserPatch) domain.User {
	if patch.Username != nil {
		base.Username = *patch.Username
	}
	if patch.Password != nil {
		base.Password = *patch.Password
	}
	if patch.FirstName != nil {
		base.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		base.LastName = *patch.LastName
	}
	if patch.Email != nil {
		base.Email = *patch.Email
	}
	if patch.Role != nil {
		base.Role = *patch.Role
	}
	if patch.LoginID != nil {
		base.LoginID = *patch.LoginID
	}
	if patch.Section != nil {
		base.Section = *patch.Section
	}
	if patch.LastActivity != nil {
		base.LastActivity = *patch.LastActivity
	}
	if patch.TotalActivity != nil {
		base.TotalActivity = *patch.TotalActivity
	}
	return base
}

func courseFromInput(in ports.CourseInput) *domain.Course {
	return &domain.Course{
		Title:       in.Title,
		Number:      in.Number,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Department:  in.Department,
		Credits:     in.Credits,
		Description: in.Description,
	}
}
