package handlers

import (
	"net/http"

	"wikitok/internal/models"
	"wikitok/internal/services"

	"github.com/gin-gonic/gin"
)

// ArticleHandler owns the article and interaction endpoints. All of
// these routes sit behind AuthRequired.
type ArticleHandler struct {
	articles     *services.ArticleService
	interactions *services.InteractionService
}

func NewArticleHandler(articles *services.ArticleService, interactions *services.InteractionService) *ArticleHandler {
	return &ArticleHandler{articles: articles, interactions: interactions}
}

// Save caches a client-submitted article. Saving the same external id
// again returns the stored row with a 201, never a duplicate.
func (h *ArticleHandler) Save(c *gin.Context) {
	var input services.SaveArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, models.NewValidationError("Missing required fields"))
		return
	}

	article, err := h.articles.Save(input)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Article saved", "article": article})
}

// Like sets the liked flag on the caller's interaction with the
// article addressed by external id.
func (h *ArticleHandler) Like(c *gin.Context) {
	user, article, ok := h.resolve(c)
	if !ok {
		return
	}

	interaction, err := h.interactions.Like(user.ID, article.ID)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article liked", "interaction": interaction})
}

// Unlike clears the liked flag. The interaction row and its viewed
// state survive.
func (h *ArticleHandler) Unlike(c *gin.Context) {
	user, article, ok := h.resolve(c)
	if !ok {
		return
	}

	if err := h.interactions.Unlike(user.ID, article.ID); err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article unliked"})
}

// View marks the article viewed and refreshes its view timestamp.
func (h *ArticleHandler) View(c *gin.Context) {
	user, article, ok := h.resolve(c)
	if !ok {
		return
	}

	if err := h.interactions.RecordView(user.ID, article.ID); err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "View recorded"})
}

// Liked lists the caller's liked articles.
func (h *ArticleHandler) Liked(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		JSONError(c, models.NewAuthRequiredError())
		return
	}

	articles, err := h.interactions.ListLiked(user.ID)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// History lists the caller's viewed articles, most recently viewed
// first.
func (h *ArticleHandler) History(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		JSONError(c, models.NewAuthRequiredError())
		return
	}

	entries, err := h.interactions.ListHistory(user.ID)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": entries})
}

// resolve pulls the session user and the article named in the path.
// Writes the error response itself on failure.
func (h *ArticleHandler) resolve(c *gin.Context) (*models.User, *models.Article, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		JSONError(c, models.NewAuthRequiredError())
		return nil, nil, false
	}

	article, err := h.articles.GetByWikiID(c.Param("id"))
	if err != nil {
		JSONError(c, err)
		return nil, nil, false
	}

	return user, article, true
}
