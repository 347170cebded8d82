package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"projecthub/internal/authz"
	"projecthub/internal/errors"
	"projecthub/internal/service"
)

// EpicHandler handles epic endpoints.
type EpicHandler struct {
	epicService service.EpicService
}

// NewEpicHandler creates a new epic handler.
func NewEpicHandler(epicService service.EpicService) *EpicHandler {
	return &EpicHandler{epicService: epicService}
}

// CreateEpicRequest represents an epic creation request.
type CreateEpicRequest struct {
	Title string `json:"title" validate:"required"`
}

// UpdateEpicRequest represents an epic rename request.
type UpdateEpicRequest struct {
	Title string `json:"title" validate:"required"`
}

// List godoc
// @Summary List epics visible to the caller
// @Tags epics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Epic
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /epics [get]
func (h *EpicHandler) List(c echo.Context) error {
	id, _ := authz.IdentityFromContext(c)

	epics, err := h.epicService.List(c.Request().Context(), id.UserID, id.Role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, epics)
}

// Get godoc
// @Summary Get an epic with its aggregate counters
// @Tags epics
// @Produce json
// @Security BearerAuth
// @Param epicId path string true "Epic ID"
// @Success 200 {object} model.EpicDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /epics/{epicId} [get]
func (h *EpicHandler) Get(c echo.Context) error {
	detail, err := h.epicService.Get(c.Request().Context(), c.Param("epicId"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, detail)
}

// Statistics godoc
// @Summary Per-epic task progression statistics
// @Tags epics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.EpicStatistics
// @Failure 401 {object} errors.ErrorResponse
// @Router /epics/statistics [get]
func (h *EpicHandler) Statistics(c echo.Context) error {
	id, _ := authz.IdentityFromContext(c)

	stats, err := h.epicService.Statistics(c.Request().Context(), id.UserID, id.Role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}

// Create godoc
// @Summary Create an epic
// @Tags epics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEpicRequest true "Epic data"
// @Success 201 {object} model.Epic
// @Failure 400 {object} errors.ErrorResponse
// @Router /epics [post]
func (h *EpicHandler) Create(c echo.Context) error {
	var req CreateEpicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, _ := authz.IdentityFromContext(c)

	epic, err := h.epicService.Create(c.Request().Context(), req.Title, id.UserID, id.Role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, epic)
}

// Update godoc
// @Summary Rename an epic
// @Tags epics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param epicId path string true "Epic ID"
// @Param request body UpdateEpicRequest true "New title"
// @Success 200 {object} model.Epic
// @Failure 404 {object} errors.ErrorResponse
// @Router /epics/{epicId} [put]
func (h *EpicHandler) Update(c echo.Context) error {
	var req UpdateEpicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	epicID := c.Param("epicId")

	exists, err := h.epicService.Exists(ctx, epicID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrEpicNotFound.Error(),
			Code:  "EPIC_NOT_FOUND",
		})
	}

	epic, err := h.epicService.Rename(ctx, epicID, req.Title)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, epic)
}

// Delete godoc
// @Summary Delete an epic
// @Tags epics
// @Security BearerAuth
// @Param epicId path string true "Epic ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /epics/{epicId} [delete]
func (h *EpicHandler) Delete(c echo.Context) error {
	if err := h.epicService.Remove(c.Request().Context(), c.Param("epicId")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
