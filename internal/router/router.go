package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"projecthub/internal/authz"
	"projecthub/internal/config"
	"projecthub/internal/handler"
	"projecthub/internal/permit"
)

// Register wires routes and middleware. Every non-public route passes
// echo-jwt, the identity extractor and an explicit authorization gate
// declaration; the gate derives nothing from the request path.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gate *authz.Gate,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	epicHandler *handler.EpicHandler,
	taskHandler *handler.TaskHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/public/auth/login", authHandler.Login)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}), authz.ExtractIdentity())

	// User routes
	users := secured.Group("/users")
	users.GET("", userHandler.List, gate.Require(permit.ResourceUser, permit.ActionRead))
	users.GET("/profile", userHandler.Profile, gate.Require(permit.ResourceUser, permit.ActionRead))
	users.GET("/:userId", userHandler.Get, gate.Require(permit.ResourceUser, permit.ActionRead))
	users.POST("", userHandler.Create, gate.Require(permit.ResourceUser, permit.ActionCreate))
	users.DELETE("/:userId", userHandler.Delete, gate.RequireInstance(permit.ResourceUser, permit.ActionDelete, "userId"))

	// Epic routes
	epics := secured.Group("/epics")
	epics.GET("", epicHandler.List, gate.Require(permit.ResourceEpic, permit.ActionRead))
	epics.GET("/statistics", epicHandler.Statistics, gate.Require(permit.ResourceEpic, permit.ActionRead))
	epics.GET("/:epicId", epicHandler.Get, gate.Require(permit.ResourceEpic, permit.ActionRead))
	epics.POST("", epicHandler.Create, gate.Require(permit.ResourceEpic, permit.ActionCreate))
	epics.PUT("/:epicId", epicHandler.Update, gate.RequireInstance(permit.ResourceEpic, permit.ActionUpdate, "epicId"))
	epics.DELETE("/:epicId", epicHandler.Delete, gate.RequireInstance(permit.ResourceEpic, permit.ActionDelete, "epicId"))

	// Task routes
	tasks := secured.Group("/tasks")
	tasks.GET("", taskHandler.List, gate.Require(permit.ResourceTask, permit.ActionRead))
	tasks.GET("/statistics/users", taskHandler.StatisticsByUser, gate.Require(permit.ResourceTask, permit.ActionRead))
	tasks.GET("/statistics/tasks", taskHandler.StatisticsByTask, gate.Require(permit.ResourceTask, permit.ActionRead))
	tasks.GET("/:taskId", taskHandler.Get, gate.Require(permit.ResourceTask, permit.ActionRead))
	tasks.POST("", taskHandler.Create, gate.Require(permit.ResourceTask, permit.ActionCreate))
	tasks.PUT("/:taskId", taskHandler.Update, gate.RequireInstance(permit.ResourceTask, permit.ActionUpdate, "taskId"))
	tasks.DELETE("/:taskId", taskHandler.Delete, gate.RequireInstance(permit.ResourceTask, permit.ActionDelete, "taskId"))
	tasks.PUT("/:taskId/assign", taskHandler.Assign, gate.RequireInstance(permit.ResourceTask, permit.ActionAssign, "taskId"))
	tasks.PUT("/:taskId/unassigned", taskHandler.Unassign, gate.RequireInstance(permit.ResourceTask, permit.ActionUnassign, "taskId"))
	tasks.PUT("/:taskId/log-work", taskHandler.LogWork, gate.RequireInstance(permit.ResourceTask, permit.ActionLogWork, "taskId"))

	// Comment routes
	comments := secured.Group("/comments")
	comments.GET("", commentHandler.List, gate.Require(permit.ResourceComment, permit.ActionRead))
	comments.POST("", commentHandler.Create, gate.Require(permit.ResourceComment, permit.ActionCreate))
	comments.PUT("/:commentId", commentHandler.Update, gate.RequireInstance(permit.ResourceComment, permit.ActionUpdate, "commentId"))
	comments.DELETE("/:commentId", commentHandler.Delete, gate.RequireInstance(permit.ResourceComment, permit.ActionDelete, "commentId"))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
