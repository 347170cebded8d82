package repository

import (
	"context"

	"gorm.io/gorm"

	"projecthub/internal/model"
)

// TaskRepository defines task persistence and aggregate queries.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, epicID, createdBy string) ([]model.Task, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateDetails(ctx context.Context, id, title, description string) error
	SetAssignee(ctx context.Context, id string, userID *string) error
	LogWork(ctx context.Context, id, status string, incrementMinutes int64) error
	Delete(ctx context.Context, id string) (int64, error)
	CommentCount(ctx context.Context, id string) (int64, error)
	StatsByAssignee(ctx context.Context) ([]model.UserTaskCount, error)
	StatsByComments(ctx context.Context) ([]model.TaskCommentCount, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns tasks, optionally filtered by epic and by creator.
func (r *taskRepository) List(ctx context.Context, epicID, createdBy string) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})
	if epicID != "" {
		q = q.Where("epic_id = ?", epicID)
	}
	if createdBy != "" {
		q = q.Where("created_by = ?", createdBy)
	}

	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *taskRepository) UpdateDetails(ctx context.Context, id, title, description string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
		}).Error
}

// SetAssignee writes the assignee column; nil clears it.
func (r *taskRepository) SetAssignee(ctx context.Context, id string, userID *string) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).
		Update("assigned_to", userID).Error
}

// LogWork sets the status and increments time_spent atomically in SQL.
func (r *taskRepository) LogWork(ctx context.Context, id, status string, incrementMinutes int64) error {
	return r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"time_spent": gorm.Expr("time_spent + ?", incrementMinutes),
		}).Error
}

func (r *taskRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	return res.RowsAffected, res.Error
}

func (r *taskRepository) CommentCount(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("task_id = ?", id).Count(&count).Error
	return count, err
}

// StatsByAssignee tallies tasks per assignee. The left join keeps unassigned
// tasks in the result as a row with null user columns.
func (r *taskRepository) StatsByAssignee(ctx context.Context) ([]model.UserTaskCount, error) {
	var stats []model.UserTaskCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT users.id AS user_id,
		       users.first_name,
		       users.last_name,
		       COUNT(tasks.id) AS task_count
		FROM tasks
		LEFT JOIN users ON users.id = tasks.assigned_to
		GROUP BY users.id, users.first_name, users.last_name`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// StatsByComments tallies comments per task.
func (r *taskRepository) StatsByComments(ctx context.Context) ([]model.TaskCommentCount, error) {
	var stats []model.TaskCommentCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT tasks.id AS task_id,
		       tasks.title,
		       tasks.epic_id,
		       tasks.assigned_to,
		       COUNT(comments.id) AS comments_count
		FROM tasks
		LEFT JOIN comments ON comments.task_id = tasks.id
		GROUP BY tasks.id, tasks.title, tasks.epic_id, tasks.assigned_to`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
