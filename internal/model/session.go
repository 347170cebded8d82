package model

import "time"

// Session is a short-lived numeric credential used by the MCP surface in
// place of a bearer token. Logout deletes the row; there is no expiry column.
type Session struct {
	ID        string    `json:"id" gorm:"type:char(26);primaryKey"`
	Code      string    `json:"-" gorm:"size:6;not null;index"`
	UserID    string    `json:"userId" gorm:"type:char(26);not null;index"`
	CreatedAt time.Time `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
