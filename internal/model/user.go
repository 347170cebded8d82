package model

import "time"

// Role values a user can hold. The role gates whether listing and statistics
// queries are scoped to the caller's own items or run tenant-wide.
const (
	RoleAdmin     = "Admin"
	RoleManager   = "Manager"
	RoleDeveloper = "Developer"
)

// User represents an authenticated user in the system. Emails are stored
// upper-cased so uniqueness is case-insensitive.
type User struct {
	ID           string    `json:"userId" gorm:"type:char(26);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName    string    `json:"firstName" gorm:"size:255;not null"`
	LastName     string    `json:"lastName" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null"`
	CreatedAt    time.Time `json:"createdAt"`
}
