package model

import "time"

// Comment is free-form text attached to a task.
type Comment struct {
	ID        string    `json:"commentId" gorm:"type:char(26);primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	TaskID    string    `json:"taskId" gorm:"type:char(26);not null;index"`
	CreatedBy string    `json:"createdBy" gorm:"type:char(26);not null;index"`
	CreatedAt time.Time `json:"createdAt"`

	Task   Task `json:"-" gorm:"foreignKey:TaskID"`
	Author User `json:"-" gorm:"foreignKey:CreatedBy"`
}
