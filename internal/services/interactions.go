package services

import (
	"errors"
	"fmt"
	"time"

	"wikitok/internal/models"
	"wikitok/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionService records likes and views. There is at most one
// interaction row per (user, article) pair; the composite unique index
// serializes racing first-writers, so create-then-read is the upsert
// discipline throughout.
type InteractionService struct {
	db       *gorm.DB
	cache    *utils.Cache
	cacheTTL time.Duration
}

func NewInteractionService(db *gorm.DB, cache *utils.Cache, cacheTTL time.Duration) *InteractionService {
	return &InteractionService{db: db, cache: cache, cacheTTL: cacheTTL}
}

// HistoryEntry is an article plus the time it was last viewed.
type HistoryEntry struct {
	models.Article
	ViewedAt time.Time `json:"viewed_at"`
}

// Stats are the per-user interaction counts.
type Stats struct {
	TotalViewed int64 `json:"total_viewed"`
	TotalLiked  int64 `json:"total_liked"`
}

// Like sets the liked flag for (user, article). A first like creates
// the row with viewed=true as well: liking something the user never
// opened still counts as having seen it. On an existing row only the
// liked flag changes; the view timestamp is untouched.
func (s *InteractionService) Like(userID, articleID uint) (*models.Interaction, error) {
	inter := models.Interaction{
		UserID:    userID,
		ArticleID: articleID,
		Liked:     true,
		Viewed:    true,
		ViewedAt:  time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
		DoNothing: true,
	}).Create(&inter).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	stored, err := s.get(userID, articleID)
	if err != nil {
		return nil, err
	}
	if !stored.Liked {
		if err := s.db.Model(stored).Update("liked", true).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		stored.Liked = true
	}

	s.invalidateStats(userID)
	return stored, nil
}

// Unlike clears the liked flag. The row is never deleted and the
// viewed state is retained; a missing row is a no-op.
func (s *InteractionService) Unlike(userID, articleID uint) error {
	stored, err := s.get(userID, articleID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.ErrCodeNotFound {
			return nil
		}
		return err
	}
	if err := s.db.Model(stored).Update("liked", false).Error; err != nil {
		return models.NewInternalError(err)
	}

	s.invalidateStats(userID)
	return nil
}

// RecordView marks the article viewed and refreshes the view timestamp.
func (s *InteractionService) RecordView(userID, articleID uint) error {
	now := time.Now()
	inter := models.Interaction{
		UserID:    userID,
		ArticleID: articleID,
		Viewed:    true,
		ViewedAt:  now,
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "article_id"}},
		DoNothing: true,
	}).Create(&inter)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}

	if res.RowsAffected == 0 {
		// Row already existed, refresh it in place.
		err := s.db.Model(&models.Interaction{}).
			Where("user_id = ? AND article_id = ?", userID, articleID).
			Updates(map[string]interface{}{"viewed": true, "viewed_at": now}).Error
		if err != nil {
			return models.NewInternalError(err)
		}
	}

	s.invalidateStats(userID)
	return nil
}

// ListLiked returns the articles the user has liked.
func (s *InteractionService) ListLiked(userID uint) ([]models.Article, error) {
	var inters []models.Interaction
	err := s.db.Preload("Article").
		Where("user_id = ? AND liked = ?", userID, true).
		Find(&inters).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	articles := make([]models.Article, 0, len(inters))
	for _, inter := range inters {
		articles = append(articles, inter.Article)
	}
	return articles, nil
}

// ListHistory returns the user's viewed articles, most recent first.
func (s *InteractionService) ListHistory(userID uint) ([]HistoryEntry, error) {
	var inters []models.Interaction
	err := s.db.Preload("Article").
		Where("user_id = ? AND viewed = ?", userID, true).
		Order("viewed_at DESC").
		Find(&inters).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	entries := make([]HistoryEntry, 0, len(inters))
	for _, inter := range inters {
		entries = append(entries, HistoryEntry{Article: inter.Article, ViewedAt: inter.ViewedAt})
	}
	return entries, nil
}

// GetStats counts the user's viewed and liked interactions. Results
// are cached briefly; every write path for the user drops the entry.
func (s *InteractionService) GetStats(userID uint) (*Stats, error) {
	key := statsCacheKey(userID)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key).(*Stats); ok {
			return cached, nil
		}
	}

	var stats Stats
	err := s.db.Model(&models.Interaction{}).
		Where("user_id = ? AND viewed = ?", userID, true).
		Count(&stats.TotalViewed).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	err = s.db.Model(&models.Interaction{}).
		Where("user_id = ? AND liked = ?", userID, true).
		Count(&stats.TotalLiked).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if s.cache != nil {
		s.cache.Set(key, &stats, s.cacheTTL)
	}
	return &stats, nil
}

func (s *InteractionService) get(userID, articleID uint) (*models.Interaction, error) {
	var stored models.Interaction
	err := s.db.Where("user_id = ? AND article_id = ?", userID, articleID).First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Interaction not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &stored, nil
}

func (s *InteractionService) invalidateStats(userID uint) {
	if s.cache != nil {
		s.cache.Delete(statsCacheKey(userID))
	}
}

func statsCacheKey(userID uint) string {
	return fmt.Sprintf("stats:user:%d", userID)
}
