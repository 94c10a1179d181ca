package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/akulagin/clubhouse/internal/domain/model"
	"github.com/akulagin/clubhouse/internal/server/http/middleware"
)

// CurrentUser extracts the resolved user from context, nil when the
// request is anonymous.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.CurrentUserContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}
