package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:120" json:"email"` // set on first OAuth login
	Username  string    `gorm:"uniqueIndex;size:80" json:"username"`
	CreatedAt time.Time `json:"created_at"`
	// No UpdatedAt: identity records are immutable after creation.
}
