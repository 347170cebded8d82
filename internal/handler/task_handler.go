package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"projecthub/internal/authz"
	"projecthub/internal/errors"
	"projecthub/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	EpicID      string `json:"epicId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateTaskRequest represents a task update request.
type UpdateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// AssignTaskRequest represents a task assignment request.
type AssignTaskRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// LogWorkRequest represents a log-work request. The increment is validated
// non-negative before it ever reaches the service.
type LogWorkRequest struct {
	Status                    string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
	IncrementTimeSpentMinutes int64  `json:"incrementTimeSpentInMinutes" validate:"gte=0"`
}

// List godoc
// @Summary List tasks visible to the caller
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param epicId query string false "Filter by epic"
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	id, _ := authz.IdentityFromContext(c)

	tasks, err := h.taskService.List(c.Request().Context(), c.QueryParam("epicId"), id.UserID, id.Role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get godoc
// @Summary Get a task with its comment count
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} model.TaskDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	detail, err := h.taskService.Get(c.Request().Context(), c.Param("taskId"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, detail)
}

// StatisticsByUser godoc
// @Summary Task count per assignee
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserTaskCount
// @Router /tasks/statistics/users [get]
func (h *TaskHandler) StatisticsByUser(c echo.Context) error {
	stats, err := h.taskService.StatisticsByUser(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}

// StatisticsByTask godoc
// @Summary Comment count per task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.TaskCommentCount
// @Router /tasks/statistics/tasks [get]
func (h *TaskHandler) StatisticsByTask(c echo.Context) error {
	stats, err := h.taskService.StatisticsByTask(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}

// Create godoc
// @Summary Create a task in an epic
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, _ := authz.IdentityFromContext(c)

	task, err := h.taskService.Create(c.Request().Context(), service.CreateTaskInput{
		EpicID:      req.EpicID,
		Title:       req.Title,
		Description: req.Description,
		UserID:      id.UserID,
		Role:        id.Role,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, task)
}

// Update godoc
// @Summary Update a task's title and description
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param request body UpdateTaskRequest true "Task data"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateDetails(c.Request().Context(), c.Param("taskId"), req.Title, req.Description)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.taskService.Remove(c.Request().Context(), c.Param("taskId")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// Assign godoc
// @Summary Assign a task to a user
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param request body AssignTaskRequest true "Assignee"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId}/assign [put]
func (h *TaskHandler) Assign(c echo.Context) error {
	var req AssignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Assign(c.Request().Context(), c.Param("taskId"), req.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, task)
}

// Unassign godoc
// @Summary Clear a task's assignee
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId}/unassigned [put]
func (h *TaskHandler) Unassign(c echo.Context) error {
	task, err := h.taskService.Unassign(c.Request().Context(), c.Param("taskId"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, task)
}

// LogWork godoc
// @Summary Log work on a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param request body LogWorkRequest true "Status and time increment"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{taskId}/log-work [put]
func (h *TaskHandler) LogWork(c echo.Context) error {
	var req LogWorkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.LogWork(c.Request().Context(), c.Param("taskId"), req.Status, req.IncrementTimeSpentMinutes)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, task)
}
