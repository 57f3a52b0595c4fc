package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kambaz/kambaz-api/internal/core/domain"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

type stubUserService struct {
	signupFn          func(ctx context.Context, in ports.NewUserInput) (*domain.PublicUser, string, error)
	signinFn          func(ctx context.Context, username, password string) (*domain.User, string, error)
	signoutFn         func(ctx context.Context, token string) error
	profileFn         func(ctx context.Context, sess *domain.Session) (*domain.User, error)
	createUserFn      func(ctx context.Context, in ports.NewUserInput) (*domain.User, error)
	findUserByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	listUsersFn       func(ctx context.Context, filter ports.UserFilter) ([]domain.User, error)
	updateUserFn      func(ctx context.Context, sess *domain.Session, id string, patch ports.UserPatch) (*domain.User, error)
	deleteUserFn      func(ctx context.Context, id string) (int64, error)
	createCourseFn    func(ctx context.Context, sess *domain.Session, in ports.CourseInput) (*domain.Course, error)
	enrolledCoursesFn func(ctx context.Context, sess *domain.Session, userID string) ([]domain.Course, error)
}

func (s *stubUserService) Signup(ctx context.Context, in ports.NewUserInput) (*domain.PublicUser, string, error) {
	return s.signupFn(ctx, in)
}

func (s *stubUserService) Signin(ctx context.Context, username, password string) (*domain.User, string, error) {
	return s.signinFn(ctx, username, password)
}

func (s *stubUserService) Signout(ctx context.Context, token string) error {
	return s.signoutFn(ctx, token)
}

func (s *stubUserService) Profile(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	return s.profileFn(ctx, sess)
}

func (s *stubUserService) CreateUser(ctx context.Context, in ports.NewUserInput) (*domain.User, error) {
	return s.createUserFn(ctx, in)
}

func (s *stubUserService) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findUserByIDFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]domain.User, error) {
	return s.listUsersFn(ctx, filter)
}

func (s *stubUserService) UpdateUser(ctx context.Context, sess *domain.Session, id string, patch ports.UserPatch) (*domain.User, error) {
	return s.updateUserFn(ctx, sess, id, patch)
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) (int64, error) {
	return s.deleteUserFn(ctx, id)
}

func (s *stubUserService) CreateCourseForUser(ctx context.Context, sess *domain.Session, in ports.CourseInput) (*domain.Course, error) {
	return s.createCourseFn(ctx, sess, in)
}

func (s *stubUserService) ListEnrolledCourses(ctx context.Context, sess *domain.Session, userID string) ([]domain.Course, error) {
	return s.enrolledCoursesFn(ctx, sess, userID)
}

func testCookie() SessionCookie {
	return SessionCookie{Name: "kambaz_session", TTL: time.Hour, SameSite: "lax"}
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Signup_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		signupFn: func(_ context.Context, in ports.NewUserInput) (*domain.PublicUser, string, error) {
			if in.ID != "u1" || in.Username != "alice" || in.Password != "pw" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.PublicUser{ID: "u1", Username: "alice", Role: domain.RoleUser, LoginID: "user_1", Section: "default"}, "tok1", nil
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, rec := newJSONContext(e, http.MethodPost, "/api/users/signup", `{"_id":"u1","username":"alice","password":"pw"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "u1" || resp["username"] != "alice" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password leaked in response")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "kambaz_session" || cookies[0].Value != "tok1" {
		t.Fatalf("session cookie not issued: %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestUserHandler_Signup_ConflictPropagates(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		signupFn: func(context.Context, ports.NewUserInput) (*domain.PublicUser, string, error) {
			return nil, "", domain.ErrUsernameTaken
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, rec := newJSONContext(e, http.MethodPost, "/api/users/signup", `{"_id":"u2","username":"alice","password":"pw"}`)
	err := h.Signup(c)
	if err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if cookies := rec.Result().Cookies(); len(cookies) != 0 {
		t.Fatalf("no cookie on failure, got %+v", cookies)
	}
}

func TestUserHandler_Signin_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		signinFn: func(_ context.Context, username, password string) (*domain.User, string, error) {
			if username != "alice" || password != "pw" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser}, "tok2", nil
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, rec := newJSONContext(e, http.MethodPost, "/api/users/signin", `{"username":"alice","password":"pw"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "u1" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password leaked in response")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "tok2" {
		t.Fatalf("session cookie not issued: %+v", cookies)
	}
}

func TestUserHandler_Signin_BadCredentials(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		signinFn: func(context.Context, string, string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, _ := newJSONContext(e, http.MethodPost, "/api/users/signin", `{"username":"alice","password":"bad"}`)
	if err := h.Signin(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserHandler_Signout_ClearsCookie(t *testing.T) {
	e := echo.New()
	destroyed := ""
	stub := &stubUserService{
		signoutFn: func(_ context.Context, token string) error {
			destroyed = token
			return nil
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, rec := newJSONContext(e, http.MethodPost, "/api/users/signout", "")
	c.Set(SessionContextKey, &domain.Session{Token: "tok3", User: domain.User{ID: "u1"}})

	if err := h.Signout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if destroyed != "tok3" {
		t.Fatalf("expected session tok3 destroyed, got %q", destroyed)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expiring cookie, got %+v", cookies)
	}
}

func TestUserHandler_Profile_Unauthenticated(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		profileFn: func(_ context.Context, sess *domain.Session) (*domain.User, error) {
			if sess != nil {
				t.Fatalf("expected nil session")
			}
			return nil, domain.ErrUnauthenticated
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, _ := newJSONContext(e, http.MethodGet, "/api/users/profile", "")
	if err := h.Profile(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserHandler_List_RoleTakesPrecedence(t *testing.T) {
	e := echo.New()
	var got ports.UserFilter
	stub := &stubUserService{
		listUsersFn: func(_ context.Context, filter ports.UserFilter) ([]domain.User, error) {
			got = filter
			return []domain.User{}, nil
		},
	}
	h := NewUserHandler(stub, testCookie())

	// Both query params present: role wins silently.
	c, rec := newJSONContext(e, http.MethodGet, "/api/users?role=FACULTY&name=smith", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Kind != ports.FilterByRole || got.Role != domain.RoleFaculty {
		t.Fatalf("expected role filter, got %+v", got)
	}

	c, _ = newJSONContext(e, http.MethodGet, "/api/users?name=smith", "")
	_ = h.List(c)
	if got.Kind != ports.FilterByName || got.NamePart != "smith" {
		t.Fatalf("expected name filter, got %+v", got)
	}

	c, _ = newJSONContext(e, http.MethodGet, "/api/users", "")
	_ = h.List(c)
	if got.Kind != ports.FilterAll {
		t.Fatalf("expected all filter, got %+v", got)
	}
}

func TestUserHandler_Update_OnlyPresentFieldsPatch(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	var got ports.UserPatch
	stub := &stubUserService{
		updateUserFn: func(_ context.Context, _ *domain.Session, id string, patch ports.UserPatch) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("unexpected id %s", id)
			}
			got = patch
			return &domain.User{ID: "u1", FirstName: "Alice"}, nil
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, rec := newJSONContext(e, http.MethodPut, "/api/users/u1", `{"firstName":"Alice"}`)
	c.SetParamNames("userId")
	c.SetParamValues("u1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.FirstName == nil || *got.FirstName != "Alice" {
		t.Fatalf("firstName not in patch: %+v", got)
	}
	if got.LastName != nil || got.Username != nil || got.Role != nil {
		t.Fatalf("absent fields must stay nil: %+v", got)
	}
}

func TestUserHandler_Delete_ReportsCount(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		deleteUserFn: func(_ context.Context, id string) (int64, error) {
			if id != "ghost" {
				t.Fatalf("unexpected id %s", id)
			}
			return 0, nil
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, rec := newJSONContext(e, http.MethodDelete, "/api/users/ghost", "")
	c.SetParamNames("userId")
	c.SetParamValues("ghost")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete of missing id must not error: %v", err)
	}
	var resp deleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.DeletedCount != 0 {
		t.Fatalf("expected zero deleted, got %d", resp.DeletedCount)
	}
}

func TestUserHandler_CreateCourse_PassesSession(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		createCourseFn: func(_ context.Context, sess *domain.Session, in ports.CourseInput) (*domain.Course, error) {
			if sess == nil || sess.User.ID != "u1" {
				t.Fatalf("session not forwarded: %+v", sess)
			}
			if in.Title != "CS101" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Course{ID: "c1", Title: "CS101", Author: "u1"}, nil
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, rec := newJSONContext(e, http.MethodPost, "/api/users/current/courses", `{"title":"CS101"}`)
	c.Set(SessionContextKey, &domain.Session{Token: "tok", User: domain.User{ID: "u1"}})

	if err := h.CreateCourse(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_EnrolledCourses_CurrentSentinel(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		enrolledCoursesFn: func(_ context.Context, sess *domain.Session, userID string) ([]domain.Course, error) {
			if userID != "current" {
				t.Fatalf("sentinel must pass through, got %s", userID)
			}
			if sess == nil {
				return nil, domain.ErrUnauthenticated
			}
			return []domain.Course{{ID: "c1", Title: "CS101", Enrolled: true}}, nil
		},
	}
	h := NewUserHandler(stub, testCookie())

	c, _ := newJSONContext(e, http.MethodGet, "/api/users/current/courses", "")
	c.SetParamNames("userId")
	c.SetParamValues("current")
	if err := h.EnrolledCourses(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated without session, got %v", err)
	}

	c, rec := newJSONContext(e, http.MethodGet, "/api/users/current/courses", "")
	c.SetParamNames("userId")
	c.SetParamValues("current")
	c.Set(SessionContextKey, &domain.Session{Token: "tok", User: domain.User{ID: "u1"}})
	if err := h.EnrolledCourses(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["enrolled"] != true {
		t.Fatalf("expected enrolled course, got %+v", resp)
	}
}
