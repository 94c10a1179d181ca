package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/domain/model"
	"github.com/akulagin/clubhouse/internal/server/http/dto"
	"github.com/akulagin/clubhouse/internal/server/http/middleware"
)

// AuthHandler processes registration, login and the profile endpoint.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Register(c.Request.Context(), model.Registration{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidName),
			errors.Is(err, domainErrors.ErrPasswordTooShort),
			errors.Is(err, domainErrors.ErrPasswordMismatch),
			errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "username is already taken"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetSessionCookie(c, token)
	c.Status(http.StatusOK)
}

// Login handles POST /api/user/login. All credential failures collapse
// into the same response, so a caller cannot probe which usernames exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnknownUser),
			errors.Is(err, domainErrors.ErrBadPassword),
			errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid username or password"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetSessionCookie(c, token)
	c.Status(http.StatusOK)
}

// Logout handles POST /api/user/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.Status(http.StatusOK)
}

// Profile handles GET /api/user.
func (h *AuthHandler) Profile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Member:    user.Member,
	})
}
