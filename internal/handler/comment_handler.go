package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"projecthub/internal/authz"
	"projecthub/internal/errors"
	"projecthub/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	TaskID  string `json:"taskId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdateCommentRequest represents a comment update request.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// List godoc
// @Summary List comments, optionally for one task
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param taskId query string false "Filter by task"
// @Success 200 {array} model.Comment
// @Failure 401 {object} errors.ErrorResponse
// @Router /comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.commentService.List(c.Request().Context(), c.QueryParam("taskId"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, comments)
}

// Create godoc
// @Summary Comment on a task
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, _ := authz.IdentityFromContext(c)

	comment, err := h.commentService.Create(c.Request().Context(), service.CreateCommentInput{
		TaskID:  req.TaskID,
		Content: req.Content,
		UserID:  id.UserID,
		Role:    id.Role,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Update a comment's content
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "Comment ID"
// @Param request body UpdateCommentRequest true "New content"
// @Success 200 {object} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{commentId} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	commentID := c.Param("commentId")

	exists, err := h.commentService.Exists(ctx, commentID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrCommentNotFound.Error(),
			Code:  "COMMENT_NOT_FOUND",
		})
	}

	comment, err := h.commentService.UpdateContent(ctx, commentID, req.Content)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Tags comments
// @Security BearerAuth
// @Param commentId path string true "Comment ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	commentID := c.Param("commentId")

	exists, err := h.commentService.Exists(ctx, commentID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: errors.ErrCommentNotFound.Error(),
			Code:  "COMMENT_NOT_FOUND",
		})
	}

	if err := h.commentService.Remove(ctx, commentID); err != nil {
		// row vanished between the check and the delete
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "failed to delete comment, it does not exist or was already deleted",
			Code:  "COMMENT_DELETE_FAILED",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
