package main

import (
	"net/http"

	_ "projecthub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"projecthub/internal/auth"
	"projecthub/internal/authz"
	"projecthub/internal/cache"
	"projecthub/internal/config"
	"projecthub/internal/db"
	"projecthub/internal/handler"
	"projecthub/internal/model"
	"projecthub/internal/notify"
	"projecthub/internal/permit"
	"projecthub/internal/repository"
	"projecthub/internal/router"
	"projecthub/internal/service"
)

// @title ProjectHub API
// @version 1.0
// @description Project management API with epics, tasks, comments and externally authorized access.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Epic{},
		&model.Task{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	authorizer := permit.NewClient(cfg.PDPURL, cfg.PDPToken, cfg.PDPTenant)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	epicRepo := repository.NewEpicRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	notifier := notify.NewWebhook(cfg.WebhookURL)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessionRepo, jwtService, notifier, log)
	userService := service.NewUserService(userRepo, authorizer, cacheClient, log)
	epicService := service.NewEpicService(epicRepo, authorizer, log)
	taskService := service.NewTaskService(taskRepo, epicRepo, authorizer, log)
	commentService := service.NewCommentService(commentRepo, taskRepo, authorizer, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	epicHandler := handler.NewEpicHandler(epicService)
	taskHandler := handler.NewTaskHandler(taskService)
	commentHandler := handler.NewCommentHandler(commentService)

	gate := authz.NewGate(authorizer, log)

	// Register routes
	router.Register(
		e,
		cfg,
		gate,
		authHandler,
		userHandler,
		epicHandler,
		taskHandler,
		commentHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Infof("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
