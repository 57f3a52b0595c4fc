package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kambaz/kambaz-api/internal/api/metrics"
	"github.com/kambaz/kambaz-api/internal/core/ports"
)

// CourseHandler handles the /api/courses surface.
type CourseHandler struct {
	courses ports.CourseService
}

func NewCourseHandler(courses ports.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List handles GET /api/courses. Modules come back populated.
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courses.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Get handles GET /api/courses/:courseId. 404 when no document matches.
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courses.GetByID(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Create handles POST /api/courses. The author, when known, is the session
// user; anonymous creation leaves it empty as the original API did.
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author := ""
	if sess := currentSession(c); sess != nil {
		author = sess.User.ID
	}

	course, err := h.courses.Create(c.Request().Context(), courseInput(req), author)
	if err != nil {
		return err
	}
	metrics.CoursesCreatedTotal.Inc()
	return c.JSON(http.StatusOK, course)
}

// Update handles PUT /api/courses/:courseId. A missing id is a silent
// zero-matched no-op.
func (h *CourseHandler) Update(c echo.Context) error {
	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	matched, err := h.courses.Update(c.Request().Context(), c.Param("courseId"), ports.CoursePatch{
		Title:       req.Title,
		Number:      req.Number,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Department:  req.Department,
		Credits:     req.Credits,
		Description: req.Description,
		Author:      req.Author,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateResponse{MatchedCount: matched})
}

// Delete handles DELETE /api/courses/:courseId.
func (h *CourseHandler) Delete(c echo.Context) error {
	deleted, err := h.courses.Delete(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{DeletedCount: deleted})
}

func courseInput(req createCourseRequest) ports.CourseInput {
	return ports.CourseInput{
		Title:       req.Title,
		Number:      req.Number,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Department:  req.Department,
		Credits:     req.Credits,
		Description: req.Description,
	}
}
