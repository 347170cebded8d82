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

// CreateCommentInput carries the fields of a comment creation.
type CreateCommentInput struct {
	TaskID  string
	Content string
	UserID  string
	Role    string
}

// CommentService exposes comment domain operations.
type CommentService interface {
	List(ctx context.Context, taskID string) ([]model.Comment, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, in CreateCommentInput) (*model.Comment, error)
	UpdateContent(ctx context.Context, id, content string) (*model.Comment, error)
	Remove(ctx context.Context, id string) error
}

type commentService struct {
	repo   repository.CommentRepository
	tasks  repository.TaskRepository
	permit permit.Authorizer
	log    *logrus.Logger
}

// NewCommentService builds a CommentService.
func NewCommentService(repo repository.CommentRepository, tasks repository.TaskRepository, p permit.Authorizer, log *logrus.Logger) CommentService {
	return &commentService{repo: repo, tasks: tasks, permit: p, log: log}
}

func (s *commentService) List(ctx context.Context, taskID string) ([]model.Comment, error) {
	return s.repo.List(ctx, taskID)
}

func (s *commentService) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Create inserts the comment after an explicit task existence check, then
// registers the oracle instance, links it to the parent task and grants the
// author's role on it unless the author is Admin.
func (s *commentService) Create(ctx context.Context, in CreateCommentInput) (*model.Comment, error) {
	exists, err := s.tasks.Exists(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("check task: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrTaskNotFound
	}

	comment := &model.Comment{
		ID:        newID(),
		Content:   in.Content,
		TaskID:    in.TaskID,
		CreatedBy: in.UserID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	logSyncFailure(s.log, s.permit.CreateInstance(ctx, permit.InstanceFacts{
		Key:      comment.ID,
		Resource: permit.ResourceComment,
	}), permit.ResourceComment, comment.ID, "create instance")

	logSyncFailure(s.log, s.permit.CreateRelationship(ctx, permit.RelationshipTuple{
		Subject:  permit.Instance(permit.ResourceTask, comment.TaskID).String(),
		Relation: permit.RelationParent,
		Object:   permit.Instance(permit.ResourceComment, comment.ID).String(),
	}), permit.ResourceComment, comment.ID, "create relationship")

	if in.Role != model.RoleAdmin {
		logSyncFailure(s.log, s.permit.AssignRole(ctx, permit.RoleAssignment{
			User:             in.UserID,
			Role:             in.Role,
			ResourceInstance: permit.Instance(permit.ResourceComment, comment.ID).String(),
		}), permit.ResourceComment, comment.ID, "assign author role")
	}

	return comment, nil
}

func (s *commentService) UpdateContent(ctx context.Context, id, content string) (*model.Comment, error) {
	if err := s.repo.UpdateContent(ctx, id, content); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}

// Remove hard-deletes the comment and retracts the oracle instance.
func (s *commentService) Remove(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrCommentNotFound
	}

	logSyncFailure(s.log, s.permit.DeleteInstance(ctx, permit.Instance(permit.ResourceComment, id)),
		permit.ResourceComment, id, "delete instance")
	return nil
}
