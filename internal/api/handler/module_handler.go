package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kambaz/kambaz-api/internal/core/ports"
)

// ModuleHandler handles module routes, both course-scoped and direct.
type ModuleHandler struct {
	modules ports.ModuleService
}

func NewModuleHandler(modules ports.ModuleService) *ModuleHandler {
	return &ModuleHandler{modules: modules}
}

// ListForCourse handles GET /api/courses/:courseId/modules.
func (h *ModuleHandler) ListForCourse(c echo.Context) error {
	modules, err := h.modules.ListForCourse(c.Request().Context(), c.Param("courseId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, modules)
}

// Create handles POST /api/courses/:courseId/modules. The owning course
// comes from the path, never from the body.
func (h *ModuleHandler) Create(c echo.Context) error {
	var req createModuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	module, err := h.modules.Create(c.Request().Context(), ports.ModuleInput{
		Name:        req.Name,
		Description: req.Description,
		Course:      c.Param("courseId"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, module)
}

// Update handles PUT /api/modules/:moduleId. The write goes through the
// store; a missing id is a zero-matched no-op.
func (h *ModuleHandler) Update(c echo.Context) error {
	var req updateModuleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	matched, err := h.modules.Update(c.Request().Context(), c.Param("moduleId"), ports.ModulePatch{
		Name:        req.Name,
		Description: req.Description,
		Course:      req.Course,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateResponse{MatchedCount: matched})
}

// Delete handles DELETE /api/modules/:moduleId.
func (h *ModuleHandler) Delete(c echo.Context) error {
	deleted, err := h.modules.Delete(c.Request().Context(), c.Param("moduleId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{DeletedCount: deleted})
}
