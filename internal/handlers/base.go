package handlers

import (
	"errors"
	"net/http"

	"wikitok/internal/middleware"
	"wikitok/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the user LoadUser resolved for this request.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// JSONError maps an error to the {"error": message} envelope. Typed
// AppErrors carry their own status; anything else is a 500, with the
// underlying message kept out of the response.
func JSONError(c *gin.Context, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
