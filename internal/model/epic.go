package model

import "time"

// Epic groups tasks under a single initiative, owned by its creator.
type Epic struct {
	ID        string    `json:"epicId" gorm:"type:char(26);primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	CreatedBy string    `json:"createdBy" gorm:"type:char(26);not null;index"`
	CreatedAt time.Time `json:"createdAt"`

	Creator User `json:"-" gorm:"foreignKey:CreatedBy"`
}

// EpicDetail is an Epic with its aggregate counters.
type EpicDetail struct {
	Epic
	TaskCount     int64 `json:"taskCount"`
	AssigneeCount int64 `json:"uniqueAssigneeCount"`
}

// EpicStatistics is the per-epic task progression breakdown.
type EpicStatistics struct {
	EpicID               string `json:"epicId"`
	Title                string `json:"title"`
	TaskCount            int64  `json:"taskCount"`
	TodoTaskCount        int64  `json:"todoTaskCount"`
	InProgressTaskCount  int64  `json:"inProgressTaskCount"`
	CompletedTaskCount   int64  `json:"completedTaskCount"`
	CompletionPercentage int    `json:"completionPercentage"`
}
