package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/permit"
	"projecthub/internal/repository"
)

// CreateTaskInput carries the fields of a task creation.
type CreateTaskInput struct {
	EpicID      string
	Title       string
	Description string
	UserID      string
	Role        string
}

// TaskService exposes task domain operations.
type TaskService interface {
	List(ctx context.Context, epicID, userID, role string) ([]model.Task, error)
	Get(ctx context.Context, id string) (*model.TaskDetail, error)
	StatisticsByUser(ctx context.Context) ([]model.UserTaskCount, error)
	StatisticsByTask(ctx context.Context) ([]model.TaskCommentCount, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, in CreateTaskInput) (*model.Task, error)
	UpdateDetails(ctx context.Context, id, title, description string) (*model.Task, error)
	Remove(ctx context.Context, id string) error
	Assign(ctx context.Context, taskID, userID string) (*model.Task, error)
	Unassign(ctx context.Context, taskID string) (*model.Task, error)
	LogWork(ctx context.Context, taskID, status string, incrementMinutes int64) (*model.Task, error)
}

type taskService struct {
	repo   repository.TaskRepository
	epics  repository.EpicRepository
	permit permit.Authorizer
	log    *logrus.Logger
}

// NewTaskService builds a TaskService.
func NewTaskService(repo repository.TaskRepository, epics repository.EpicRepository, p permit.Authorizer, log *logrus.Logger) TaskService {
	return &taskService{repo: repo, epics: epics, permit: p, log: log}
}

// List returns tasks filtered by the optional epic. Developers only see
// tasks they created.
func (s *taskService) List(ctx context.Context, epicID, userID, role string) ([]model.Task, error) {
	createdBy := ""
	if role == model.RoleDeveloper {
		createdBy = userID
	}
	return s.repo.List(ctx, epicID, createdBy)
}

func (s *taskService) Get(ctx context.Context, id string) (*model.TaskDetail, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	comments, err := s.repo.CommentCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	return &model.TaskDetail{Task: *task, CommentsCount: comments}, nil
}

func (s *taskService) StatisticsByUser(ctx context.Context) ([]model.UserTaskCount, error) {
	return s.repo.StatsByAssignee(ctx)
}

func (s *taskService) StatisticsByTask(ctx context.Context) ([]model.TaskCommentCount, error) {
	return s.repo.StatsByComments(ctx)
}

func (s *taskService) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Create inserts the task after an explicit epic existence check, then
// registers the oracle instance with its status attributes, links it to the
// parent epic and grants the creator's role on it unless the creator is
// Admin.
func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	exists, err := s.epics.Exists(ctx, in.EpicID)
	if err != nil {
		return nil, fmt.Errorf("check epic: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrEpicNotFound
	}

	task := &model.Task{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		TimeSpent:   0,
		Status:      model.StatusTodo,
		EpicID:      in.EpicID,
		CreatedBy:   in.UserID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	logSyncFailure(s.log, s.permit.CreateInstance(ctx, permit.InstanceFacts{
		Key:      task.ID,
		Resource: permit.ResourceTask,
		Attributes: map[string]any{
			"time_spent": task.TimeSpent,
			"status":     task.Status,
		},
	}), permit.ResourceTask, task.ID, "create instance")

	logSyncFailure(s.log, s.permit.CreateRelationship(ctx, permit.RelationshipTuple{
		Subject:  permit.Instance(permit.ResourceEpic, task.EpicID).String(),
		Relation: permit.RelationParent,
		Object:   permit.Instance(permit.ResourceTask, task.ID).String(),
	}), permit.ResourceTask, task.ID, "create relationship")

	if in.Role != model.RoleAdmin {
		logSyncFailure(s.log, s.permit.AssignRole(ctx, permit.RoleAssignment{
			User:             in.UserID,
			Role:             in.Role,
			ResourceInstance: permit.Instance(permit.ResourceTask, task.ID).String(),
		}), permit.ResourceTask, task.ID, "assign creator role")
	}

	return task, nil
}

func (s *taskService) UpdateDetails(ctx context.Context, id, title, description string) (*model.Task, error) {
	if err := s.repo.UpdateDetails(ctx, id, title, description); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.find(ctx, id)
}

// Remove hard-deletes the task and retracts the oracle instance. Comments
// under the task are not cascade-deleted.
func (s *taskService) Remove(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrTaskNotFound
	}

	logSyncFailure(s.log, s.permit.DeleteInstance(ctx, permit.Instance(permit.ResourceTask, id)),
		permit.ResourceTask, id, "delete instance")
	return nil
}

// Assign moves the task to a new assignee. The previous holder's Developer
// grant on the instance is retracted first; losing that retraction is
// non-fatal, so it is logged and the assignment proceeds.
func (s *taskService) Assign(ctx context.Context, taskID, userID string) (*model.Task, error) {
	task, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.retractAssignee(ctx, task)

	if err := s.repo.SetAssignee(ctx, taskID, &userID); err != nil {
		return nil, fmt.Errorf("set assignee: %w", err)
	}

	logSyncFailure(s.log, s.permit.AssignRole(ctx, permit.RoleAssignment{
		User:             userID,
		Role:             model.RoleDeveloper,
		ResourceInstance: permit.Instance(permit.ResourceTask, taskID).String(),
	}), permit.ResourceTask, taskID, "assign developer role")

	task.AssignedTo = &userID
	return task, nil
}

// Unassign retracts the current holder's grant and clears the assignee.
func (s *taskService) Unassign(ctx context.Context, taskID string) (*model.Task, error) {
	task, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.retractAssignee(ctx, task)

	if err := s.repo.SetAssignee(ctx, taskID, nil); err != nil {
		return nil, fmt.Errorf("clear assignee: %w", err)
	}

	task.AssignedTo = nil
	return task, nil
}

// LogWork applies a status change and a non-negative time increment, then
// pushes the fresh status attributes to the oracle for attribute-based
// policy rules. Status transitions are unconstrained.
func (s *taskService) LogWork(ctx context.Context, taskID, status string, incrementMinutes int64) (*model.Task, error) {
	exists, err := s.repo.Exists(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("check task: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrTaskNotFound
	}

	if err := s.repo.LogWork(ctx, taskID, status, incrementMinutes); err != nil {
		return nil, fmt.Errorf("log work: %w", err)
	}

	task, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}

	logSyncFailure(s.log, s.permit.UpdateInstance(ctx, permit.Instance(permit.ResourceTask, taskID), map[string]any{
		"time_spent": task.TimeSpent,
		"status":     task.Status,
	}), permit.ResourceTask, taskID, "update attributes")

	return task, nil
}

func (s *taskService) find(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (s *taskService) retractAssignee(ctx context.Context, task *model.Task) {
	if task.AssignedTo == nil {
		return
	}
	logSyncFailure(s.log, s.permit.UnassignRole(ctx, permit.RoleAssignment{
		User:             *task.AssignedTo,
		Role:             model.RoleDeveloper,
		ResourceInstance: permit.Instance(permit.ResourceTask, task.ID).String(),
	}), permit.ResourceTask, task.ID, "unassign developer role")
}
