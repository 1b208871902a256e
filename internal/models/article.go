package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is a cached reference to an externally sourced document.
// WikiID is the identifier assigned by the upstream source; the local
// surrogate key never leaves the API (clients address articles by WikiID).
type Article struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	WikiID    string    `gorm:"uniqueIndex;size:50;not null" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Summary   string    `gorm:"type:text" json:"summary"`
	URL       string    `gorm:"size:500" json:"url"`
	Thumbnail string    `gorm:"size:500" json:"thumbnail"`
	CreatedAt time.Time `json:"-"`

	// Extract mirrors Summary in API responses; the frontend reads the
	// Wikipedia field name.
	Extract string `gorm:"-" json:"extract"`
}

func (a *Article) AfterFind(tx *gorm.DB) error {
	a.Extract = a.Summary
	return nil
}
