package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kambaz/kambaz-api/internal/api/metrics"
	"github.com/kambaz/kambaz-api/internal/core/domain"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

// UserHandler handles the /api/users surface: accounts, sessions, and the
// user-scoped course operations.
type UserHandler struct {
	users  ports.UserService
	cookie SessionCookie
}

func NewUserHandler(users ports.UserService, cookie SessionCookie) *UserHandler {
	return &UserHandler{users: users, cookie: cookie}
}

// Signup handles POST /api/users/signup.
//
// @Summary      Create an account and establish a session
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details (_id, username, password required)"
// @Success      201   {object}  domain.PublicUser
// @Failure      400   {object}  map[string]string
// @Router       /api/users/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	public, token, err := h.users.Signup(c.Request().Context(), newUserInput(req))
	if err != nil {
		return err
	}

	h.cookie.issue(c, token)
	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, public)
}

// Signin handles POST /api/users/signin. The session record is persisted
// before the response is written.
//
// @Summary      Sign in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  map[string]string
// @Router       /api/users/signin [post]
func (h *UserHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.users.Signin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SigninsTotal.WithLabelValues("failure").Inc()
		return err
	}

	h.cookie.issue(c, token)
	metrics.SigninsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, user)
}

// Signout handles POST /api/users/signout. Always 200.
func (h *UserHandler) Signout(c echo.Context) error {
	if sess := currentSession(c); sess != nil {
		_ = h.users.Signout(c.Request().Context(), sess.Token)
		metrics.SignoutsTotal.Inc()
	}
	h.cookie.clear(c)
	return c.NoContent(http.StatusOK)
}

// Profile handles GET /api/users/profile. The user is re-fetched from the
// store, not served from the session snapshot.
//
// @Summary      Current user's profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.users.Profile(c.Request().Context(), currentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /api/users, the admin-style creation path. The
// original API exposes this without an auth check; that contract is kept.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.CreateUser(c.Request().Context(), newUserInput(signupRequest(req)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /api/users with optional role= and name= query filters.
// Role takes precedence when both are given.
func (h *UserHandler) List(c echo.Context) error {
	filter := ports.UserFilter{Kind: ports.FilterAll}
	if role := c.QueryParam("role"); role != "" {
		filter = ports.UserFilter{Kind: ports.FilterByRole, Role: domain.Role(role)}
	} else if name := c.QueryParam("name"); name != "" {
		filter = ports.UserFilter{Kind: ports.FilterByName, NamePart: name}
	}

	users, err := h.users.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:userId.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.FindUserByID(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/users/:userId. Editing the session's own user
// merges the patch into the live session snapshot.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.UpdateUser(c.Request().Context(), currentSession(c), c.Param("userId"), userPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:userId. Deleting a missing id reports a
// zero count, not an error.
func (h *UserHandler) Delete(c echo.Context) error {
	deleted, err := h.users.DeleteUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{DeletedCount: deleted})
}

// CreateCourse handles POST /api/users/current/courses: create a course
// authored by the session user and enroll them in it.
//
// @Summary      Create a course for the current user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      200   {object}  domain.Course
// @Failure      401   {object}  map[string]string
// @Router       /api/users/current/courses [post]
func (h *UserHandler) CreateCourse(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.users.CreateCourseForUser(c.Request().Context(), currentSession(c), courseInput(req))
	if err != nil {
		return err
	}
	metrics.CoursesCreatedTotal.Inc()
	metrics.EnrollmentsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, course)
}

// EnrolledCourses handles GET /api/users/:userId/courses. The literal
// "current" resolves to the session's user id.
func (h *UserHandler) EnrolledCourses(c echo.Context) error {
	courses, err := h.users.ListEnrolledCourses(c.Request().Context(), currentSession(c), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

func newUserInput(req signupRequest) ports.NewUserInput {
	return ports.NewUserInput{
		ID:            req.ID,
		Username:      req.Username,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Role:          req.Role,
		LoginID:       req.LoginID,
		Section:       req.Section,
		LastActivity:  req.LastActivity,
		TotalActivity: req.TotalActivity,
	}
}

func userPatch(req updateUserRequest) ports.UserPatch {
	patch := ports.UserPatch{
		Username:      req.Username,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		LoginID:       req.LoginID,
		Section:       req.Section,
		LastActivity:  req.LastActivity,
		TotalActivity: req.TotalActivity,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}
	return patch
}
