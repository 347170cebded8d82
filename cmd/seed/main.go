// Command seed populates the database with demo users, epics, tasks and
// comments. It goes through the service layer so the authorization oracle
// receives the same facts a live deployment would.
package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"projecthub/internal/config"
	"projecthub/internal/db"
	"projecthub/internal/model"
	"projecthub/internal/permit"
	"projecthub/internal/repository"
	"projecthub/internal/service"
)

const demoPassword = "2025DEVChallenge"

type demoUser struct {
	email     string
	firstName string
	lastName  string
	role      string
}

var demoUsers = []demoUser{
	{"ada.lovelace@example.com", "Ada", "Lovelace", model.RoleAdmin},
	{"grace.hopper@example.com", "Grace", "Hopper", model.RoleManager},
	{"barbara.liskov@example.com", "Barbara", "Liskov", model.RoleManager},
	{"alan.turing@example.com", "Alan", "Turing", model.RoleDeveloper},
	{"edsger.dijkstra@example.com", "Edsger", "Dijkstra", model.RoleDeveloper},
	{"donald.knuth@example.com", "Donald", "Knuth", model.RoleDeveloper},
}

var demoEpicTitles = []string{
	"Payment gateway integration",
	"Mobile onboarding revamp",
	"Reporting dashboard",
}

func main() {
	cfg := config.Load()

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Epic{},
		&model.Task{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	authorizer := permit.NewClient(cfg.PDPURL, cfg.PDPToken, cfg.PDPTenant)

	userRepo := repository.NewUserRepository(gormDB)
	epicRepo := repository.NewEpicRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	users := service.NewUserService(userRepo, authorizer, nil, log)
	epics := service.NewEpicService(epicRepo, authorizer, log)
	tasks := service.NewTaskService(taskRepo, epicRepo, authorizer, log)
	comments := service.NewCommentService(commentRepo, taskRepo, authorizer, log)

	ctx := context.Background()

	fmt.Println("---------- USERS ----------")
	var managers, developers []*model.User
	for _, d := range demoUsers {
		u, err := users.Create(ctx, service.CreateUserInput{
			Email:     d.email,
			FirstName: d.firstName,
			LastName:  d.lastName,
			Password:  demoPassword,
			Role:      d.role,
		})
		if err != nil {
			log.Fatalf("seed user %s: %v", d.email, err)
		}
		switch u.Role {
		case model.RoleManager:
			managers = append(managers, u)
		case model.RoleDeveloper:
			developers = append(developers, u)
		}
		fmt.Printf("%s\t%s\t%s\t%s %s\n", u.ID, u.Role, u.Email, u.FirstName, u.LastName)
	}

	fmt.Println("---------- EPICS ----------")
	var seededEpics []*model.Epic
	for i, title := range demoEpicTitles {
		manager := managers[i%len(managers)]
		e, err := epics.Create(ctx, title, manager.ID, manager.Role)
		if err != nil {
			log.Fatalf("seed epic %q: %v", title, err)
		}
		seededEpics = append(seededEpics, e)
		fmt.Printf("%s\t%s\t%s\n", e.ID, e.Title, e.CreatedBy)
	}

	fmt.Println("---------- TASKS ----------")
	var seededTasks []*model.Task
	for i := 0; i < 3*len(seededEpics); i++ {
		epic := seededEpics[i%len(seededEpics)]
		manager := managers[i%len(managers)]
		t, err := tasks.Create(ctx, service.CreateTaskInput{
			EpicID:      epic.ID,
			Title:       fmt.Sprintf("Task %d for %s", i+1, epic.Title),
			Description: "Seeded demo task.",
			UserID:      manager.ID,
			Role:        manager.Role,
		})
		if err != nil {
			log.Fatalf("seed task: %v", err)
		}
		assignee := developers[i%len(developers)]
		if t, err = tasks.Assign(ctx, t.ID, assignee.ID); err != nil {
			log.Fatalf("assign task: %v", err)
		}
		seededTasks = append(seededTasks, t)
		fmt.Printf("%s\t%s\t%s\n", t.ID, t.Title, t.CreatedBy)
	}

	fmt.Println("---------- COMMENTS ----------")
	for _, t := range seededTasks {
		authors := []struct {
			id   string
			role string
		}{
			{*t.AssignedTo, model.RoleDeveloper},
			{t.CreatedBy, model.RoleManager},
		}
		for _, a := range authors {
			c, err := comments.Create(ctx, service.CreateCommentInput{
				TaskID:  t.ID,
				Content: "Looks good, keep it moving.",
				UserID:  a.id,
				Role:    a.role,
			})
			if err != nil {
				log.Fatalf("seed comment: %v", err)
			}
			fmt.Printf("%s\t%s\t%s\n", c.ID, c.Content, c.CreatedBy)
		}
	}
}
