package handlers

import (
	"net/http"

	"wikitok/internal/models"
	"wikitok/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	interactions *services.InteractionService
}

func NewUserHandler(interactions *services.InteractionService) *UserHandler {
	return &UserHandler{interactions: interactions}
}

// Stats returns the caller's interaction counts alongside the user
// record.
func (h *UserHandler) Stats(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		JSONError(c, models.NewAuthRequiredError())
		return
	}

	stats, err := h.interactions.GetStats(user.ID)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_viewed": stats.TotalViewed,
		"total_liked":  stats.TotalLiked,
		"user":         user,
	})
}
