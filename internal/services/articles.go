package services

import (
	"errors"

	"wikitok/internal/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleService persists the article catalog. Articles arrive from
// the client already fetched from the upstream source; this service
// only caches them.
type ArticleService struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{
		db:        db,
		sanitizer: bluemonday.StrictPolicy(), // extracts may carry markup; store plain text
	}
}

// SaveArticleInput is the client payload for POST /api/articles.
type SaveArticleInput struct {
	WikiID    string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

// Save upserts an article by its external id. Duplicate submissions,
// including concurrent ones, resolve to the existing row: the insert
// uses ON CONFLICT DO NOTHING against the wiki_id unique index and the
// canonical row is read back afterwards.
func (s *ArticleService) Save(in SaveArticleInput) (*models.Article, error) {
	if in.WikiID == "" || in.Title == "" {
		return nil, models.NewValidationError("Missing required fields")
	}

	article := models.Article{
		WikiID:    in.WikiID,
		Title:     s.sanitizer.Sanitize(in.Title),
		Summary:   s.sanitizer.Sanitize(in.Summary),
		URL:       in.URL,
		Thumbnail: in.Thumbnail,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wiki_id"}},
		DoNothing: true,
	}).Create(&article).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.GetByWikiID(in.WikiID)
}

// GetByWikiID resolves an external id to the stored article.
func (s *ArticleService) GetByWikiID(wikiID string) (*models.Article, error) {
	var article models.Article
	if err := s.db.Where("wiki_id = ?", wikiID).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Article not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &article, nil
}
