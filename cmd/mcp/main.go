package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"projecthub/internal/auth"
	"projecthub/internal/config"
	"projecthub/internal/db"
	"projecthub/internal/mcp"
	"projecthub/internal/notify"
	"projecthub/internal/permit"
	"projecthub/internal/repository"
	"projecthub/internal/service"
)

func main() {
	cfg := config.Load()

	// stdout carries the MCP protocol; everything else goes to stderr.
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	authorizer := permit.NewClient(cfg.PDPURL, cfg.PDPToken, cfg.PDPTenant)

	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	epicRepo := repository.NewEpicRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	notifier := notify.NewWebhook(cfg.WebhookURL)

	authService := service.NewAuthService(userRepo, sessionRepo, jwtService, notifier, log)
	userService := service.NewUserService(userRepo, authorizer, nil, log)
	epicService := service.NewEpicService(epicRepo, authorizer, log)
	taskService := service.NewTaskService(taskRepo, epicRepo, authorizer, log)
	commentService := service.NewCommentService(commentRepo, taskRepo, authorizer, log)

	srv := mcp.NewServer(
		authService,
		userService,
		epicService,
		taskService,
		commentService,
		authorizer,
		log,
	)

	if err := server.ServeStdio(srv); err != nil {
		log.Fatalf("mcp server: %v", err)
	}
}
