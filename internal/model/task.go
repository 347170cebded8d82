package model

import "time"

// Task status values. Transitions are unconstrained: log-work may move a task
// from any status to any other.
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// Task is a unit of work inside an epic. TimeSpent accumulates logged minutes
// and only ever grows through the log-work operation.
type Task struct {
	ID          string    `json:"taskId" gorm:"type:char(26);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	TimeSpent   int64     `json:"timeSpent" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:20;not null"`
	EpicID      string    `json:"epicId" gorm:"type:char(26);not null;index"`
	AssignedTo  *string   `json:"assignedTo" gorm:"type:char(26);index"`
	CreatedBy   string    `json:"createdBy" gorm:"type:char(26);not null;index"`
	CreatedAt   time.Time `json:"createdAt"`

	Epic    Epic  `json:"-" gorm:"foreignKey:EpicID"`
	Creator User  `json:"-" gorm:"foreignKey:CreatedBy"`
	Assignee *User `json:"-" gorm:"foreignKey:AssignedTo"`
}

// TaskDetail is a Task with its comment count.
type TaskDetail struct {
	Task
	CommentsCount int64 `json:"commentsCount"`
}

// UserTaskCount is the per-assignee task tally.
type UserTaskCount struct {
	UserID    *string `json:"userId"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	TaskCount int64   `json:"taskCount"`
}

// TaskCommentCount is the per-task comment tally.
type TaskCommentCount struct {
	TaskID        string  `json:"taskId"`
	Title         string  `json:"title"`
	EpicID        string  `json:"epicId"`
	AssignedTo    *string `json:"assigneeUserId"`
	CommentsCount int64   `json:"commentsCount"`
}
