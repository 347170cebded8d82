package repository

import (
	"context"

	"gorm.io/gorm"

	"projecthub/internal/model"
)

// EpicRepository defines epic persistence and aggregate queries.
type EpicRepository interface {
	Create(ctx context.Context, epic *model.Epic) error
	FindByID(ctx context.Context, id string) (*model.Epic, error)
	List(ctx context.Context) ([]model.Epic, error)
	ListForUser(ctx context.Context, userID string) ([]model.Epic, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateTitle(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) (int64, error)
	TaskCount(ctx context.Context, id string) (int64, error)
	AssigneeCount(ctx context.Context, id string) (int64, error)
	Statistics(ctx context.Context, scopeUserID string) ([]model.EpicStatistics, error)
}

type epicRepository struct {
	db *gorm.DB
}

// NewEpicRepository builds a GORM-backed repository.
func NewEpicRepository(db *gorm.DB) EpicRepository {
	return &epicRepository{db: db}
}

func (r *epicRepository) Create(ctx context.Context, epic *model.Epic) error {
	return r.db.WithContext(ctx).Create(epic).Error
}

func (r *epicRepository) FindByID(ctx context.Context, id string) (*model.Epic, error) {
	var epic model.Epic
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&epic).Error; err != nil {
		return nil, err
	}
	return &epic, nil
}

func (r *epicRepository) List(ctx context.Context) ([]model.Epic, error) {
	var epics []model.Epic
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&epics).Error
	if err != nil {
		return nil, err
	}
	return epics, nil
}

// ListForUser returns the epics visible to a Developer: those they created or
// contain a task they created.
func (r *epicRepository) ListForUser(ctx context.Context, userID string) ([]model.Epic, error) {
	var epics []model.Epic
	err := r.db.WithContext(ctx).
		Distinct("epics.*").
		Joins("LEFT JOIN tasks ON tasks.epic_id = epics.id").
		Where("epics.created_by = ? OR tasks.created_by = ?", userID, userID).
		Order("epics.created_at DESC").
		Find(&epics).Error
	if err != nil {
		return nil, err
	}
	return epics, nil
}

func (r *epicRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Epic{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *epicRepository) UpdateTitle(ctx context.Context, id, title string) error {
	return r.db.WithContext(ctx).Model(&model.Epic{}).Where("id = ?", id).
		Update("title", title).Error
}

func (r *epicRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Epic{})
	return res.RowsAffected, res.Error
}

func (r *epicRepository) TaskCount(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("epic_id = ?", id).Count(&count).Error
	return count, err
}

// AssigneeCount counts the distinct users assigned to tasks of the epic.
func (r *epicRepository) AssigneeCount(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("epic_id = ? AND assigned_to IS NOT NULL", id).
		Distinct("assigned_to").
		Count(&count).Error
	return count, err
}

// Statistics aggregates per-epic task status counts. Epics without tasks are
// absent from the result (inner join). A non-empty scopeUserID narrows the
// set to epics that user created or created a task in.
func (r *epicRepository) Statistics(ctx context.Context, scopeUserID string) ([]model.EpicStatistics, error) {
	query := `
		SELECT epics.id AS epic_id,
		       epics.title,
		       COUNT(tasks.id) AS task_count,
		       SUM(CASE WHEN tasks.status = 'TODO' THEN 1 ELSE 0 END) AS todo_task_count,
		       SUM(CASE WHEN tasks.status = 'IN_PROGRESS' THEN 1 ELSE 0 END) AS in_progress_task_count,
		       SUM(CASE WHEN tasks.status = 'DONE' THEN 1 ELSE 0 END) AS completed_task_count
		FROM epics
		INNER JOIN tasks ON tasks.epic_id = epics.id`
	var args []interface{}
	if scopeUserID != "" {
		query += ` WHERE epics.created_by = ? OR tasks.created_by = ?`
		args = append(args, scopeUserID, scopeUserID)
	}
	query += `
		GROUP BY epics.id, epics.title, epics.created_at
		ORDER BY epics.created_at DESC`

	var stats []model.EpicStatistics
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
