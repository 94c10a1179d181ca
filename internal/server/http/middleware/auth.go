package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/domain/model"
	pkgAuth "github.com/akulagin/clubhouse/internal/pkg/auth"
)

const (
	// CurrentUserContextKey is a gin context key for the resolved user.
	CurrentUserContextKey = "currentUser"
	sessionCookieName     = "clubhouse_session"
)

// SessionResolver maps a session token to the current user record.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*model.User, error)
}

// Identify resolves the session token into a user and stores it in the
// request context. It never rejects the request on its own: a missing,
// expired or tampered token, or a user deleted since login, leaves the
// request anonymous. Only a storage failure aborts.
func Identify(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidSession) || errors.Is(err, domainErrors.ErrNotFound) {
				c.Next()
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(CurrentUserContextKey, user)
		c.Next()
	}
}

// RequireAuth rejects requests that Identify left anonymous.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(CurrentUserContextKey); !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetSessionCookie writes the session token cookie to the response.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearSessionCookie drops the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}
