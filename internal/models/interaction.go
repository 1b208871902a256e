package models

import (
	"time"
)

// Interaction captures a user's engagement with one article. The
// composite unique index keeps a single row per (user, article) pair,
// so "liked" and "viewed" are flags on the same row.
type Interaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;index;uniqueIndex:idx_user_article" json:"article_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Article   Article   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Liked     bool      `gorm:"default:false" json:"liked"`
	Viewed    bool      `gorm:"default:false" json:"viewed"`
	ViewedAt  time.Time `json:"viewed_at"`
}
