package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"wikitok/internal/db"
	"wikitok/internal/models"
	"wikitok/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. The shared
// cache keeps GORM's pooled connections pointed at the same store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))
	return database
}

func newTestInteractions(t *testing.T, database *gorm.DB) *InteractionService {
	t.Helper()
	cache, err := utils.NewCache(16)
	require.NoError(t, err)
	return NewInteractionService(database, cache, time.Minute)
}

func createUser(t *testing.T, database *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, Username: strings.Split(email, "@")[0]}
	require.NoError(t, database.Create(&user).Error)
	return &user
}

func createArticle(t *testing.T, database *gorm.DB, wikiID, title string) *models.Article {
	t.Helper()
	article := models.Article{WikiID: wikiID, Title: title, URL: "https://en.wikipedia.org/wiki/" + title}
	require.NoError(t, database.Create(&article).Error)
	return &article
}
