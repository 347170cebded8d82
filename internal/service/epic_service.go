package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	apperrors "projecthub/internal/errors"
	"projecthub/internal/model"
	"projecthub/internal/permit"
	"projecthub/internal/repository"
)

// EpicService exposes epic domain operations. Listing and statistics are
// scoped to the caller's own items when the caller is a Developer.
type EpicService interface {
	List(ctx context.Context, userID, role string) ([]model.Epic, error)
	Get(ctx context.Context, id string) (*model.EpicDetail, error)
	Statistics(ctx context.Context, userID, role string) ([]model.EpicStatistics, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, title, userID, role string) (*model.Epic, error)
	Rename(ctx context.Context, id, title string) (*model.Epic, error)
	Remove(ctx context.Context, id string) error
}

type epicService struct {
	repo   repository.EpicRepository
	permit permit.Authorizer
	log    *logrus.Logger
}

// NewEpicService builds an EpicService.
func NewEpicService(repo repository.EpicRepository, p permit.Authorizer, log *logrus.Logger) EpicService {
	return &epicService{repo: repo, permit: p, log: log}
}

func (s *epicService) List(ctx context.Context, userID, role string) ([]model.Epic, error) {
	if role == model.RoleDeveloper {
		return s.repo.ListForUser(ctx, userID)
	}
	return s.repo.List(ctx)
}

func (s *epicService) Get(ctx context.Context, id string) (*model.EpicDetail, error) {
	epic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEpicNotFound
		}
		return nil, fmt.Errorf("find epic: %w", err)
	}

	taskCount, err := s.repo.TaskCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	assigneeCount, err := s.repo.AssigneeCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count assignees: %w", err)
	}

	return &model.EpicDetail{
		Epic:          *epic,
		TaskCount:     taskCount,
		AssigneeCount: assigneeCount,
	}, nil
}

// Statistics returns per-epic status counts with a rounded completion
// percentage. Epics without tasks do not appear in the result.
func (s *epicService) Statistics(ctx context.Context, userID, role string) ([]model.EpicStatistics, error) {
	scope := ""
	if role == model.RoleDeveloper {
		scope = userID
	}

	stats, err := s.repo.Statistics(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("epic statistics: %w", err)
	}

	for i := range stats {
		stats[i].CompletionPercentage = completionPercentage(stats[i].CompletedTaskCount, stats[i].TaskCount)
	}
	return stats, nil
}

func completionPercentage(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func (s *epicService) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Create inserts the epic, registers it as an oracle resource instance and,
// unless the creator is Admin, grants the creator's role on that instance.
func (s *epicService) Create(ctx context.Context, title, userID, role string) (*model.Epic, error) {
	epic := &model.Epic{
		ID:        newID(),
		Title:     title,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, epic); err != nil {
		return nil, fmt.Errorf("create epic: %w", err)
	}

	logSyncFailure(s.log, s.permit.CreateInstance(ctx, permit.InstanceFacts{
		Key:      epic.ID,
		Resource: permit.ResourceEpic,
	}), permit.ResourceEpic, epic.ID, "create instance")

	if role != model.RoleAdmin {
		logSyncFailure(s.log, s.permit.AssignRole(ctx, permit.RoleAssignment{
			User:             userID,
			Role:             role,
			ResourceInstance: permit.Instance(permit.ResourceEpic, epic.ID).String(),
		}), permit.ResourceEpic, epic.ID, "assign creator role")
	}

	return epic, nil
}

func (s *epicService) Rename(ctx context.Context, id, title string) (*model.Epic, error) {
	if err := s.repo.UpdateTitle(ctx, id, title); err != nil {
		return nil, fmt.Errorf("update epic: %w", err)
	}

	epic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEpicNotFound
		}
		return nil, fmt.Errorf("find epic: %w", err)
	}
	return epic, nil
}

// Remove hard-deletes the epic and retracts the oracle instance. Tasks under
// the epic are not cascade-deleted.
func (s *epicService) Remove(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete epic: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrEpicNotFound
	}

	logSyncFailure(s.log, s.permit.DeleteInstance(ctx, permit.Instance(permit.ResourceEpic, id)),
		permit.ResourceEpic, id, "delete instance")
	return nil
}
