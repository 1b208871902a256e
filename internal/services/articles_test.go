package services

import (
	"testing"

	"wikitok/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRequiresExternalIDAndTitle(t *testing.T) {
	s := NewArticleService(setupTestDB(t))

	for _, in := range []SaveArticleInput{
		{Title: "Earth"},
		{WikiID: "Q1"},
		{},
	} {
		_, err := s.Save(in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrCodeValidation, appErr.Code)
	}
}

func TestSaveIsIdempotentPerExternalID(t *testing.T) {
	database := setupTestDB(t)
	s := NewArticleService(database)

	first, err := s.Save(SaveArticleInput{WikiID: "Q1", Title: "Earth", Summary: "Third planet"})
	require.NoError(t, err)

	// Repeat submission must resolve to the stored row, not a duplicate.
	second, err := s.Save(SaveArticleInput{WikiID: "Q1", Title: "Earth (edited)", Summary: "changed"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Earth", second.Title)
	assert.Equal(t, "Third planet", second.Summary)

	var count int64
	database.Model(&models.Article{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSaveStripsMarkup(t *testing.T) {
	s := NewArticleService(setupTestDB(t))

	article, err := s.Save(SaveArticleInput{
		WikiID:  "Q2",
		Title:   "<b>Moon</b>",
		Summary: `Natural satellite<script>alert("x")</script> of Earth`,
	})
	require.NoError(t, err)

	assert.Equal(t, "Moon", article.Title)
	assert.Equal(t, "Natural satellite of Earth", article.Summary)
}

func TestSaveMirrorsSummaryIntoExtract(t *testing.T) {
	s := NewArticleService(setupTestDB(t))

	article, err := s.Save(SaveArticleInput{WikiID: "Q3", Title: "Mars", Summary: "Fourth planet"})
	require.NoError(t, err)

	assert.Equal(t, article.Summary, article.Extract)
}

func TestGetByWikiIDUnknown(t *testing.T) {
	s := NewArticleService(setupTestDB(t))

	_, err := s.GetByWikiID("missing")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}
