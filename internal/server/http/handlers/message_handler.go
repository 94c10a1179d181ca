package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/server/http/dto"
)

// MessageHandler processes board reads and posts.
type MessageHandler struct {
	facade BoardFacade
}

// NewMessageHandler creates MessageHandler instance.
func NewMessageHandler(facade BoardFacade) *MessageHandler {
	return &MessageHandler{facade: facade}
}

// Post handles POST /api/messages.
func (h *MessageHandler) Post(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	msg, err := h.facade.PostMessage(c.Request.Context(), user.ID, req.Title, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidTitle),
			errors.Is(err, domainErrors.ErrInvalidBody):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	createdAt := msg.CreatedAt
	c.JSON(http.StatusCreated, dto.MessageResponse{
		ID:        msg.ID,
		Title:     msg.Title,
		Message:   msg.Body,
		Author:    user.DisplayName(),
		CreatedAt: &createdAt,
	})
}

// List handles GET /api/messages. Anyone may read the board; author
// names and timestamps appear only for members.
func (h *MessageHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	member := user != nil && user.Member

	messages, err := h.facade.Board(c.Request.Context(), member)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		item := dto.MessageResponse{
			ID:      m.ID,
			Title:   m.Title,
			Message: m.Body,
			Author:  m.Author,
		}
		if !m.CreatedAt.IsZero() {
			createdAt := m.CreatedAt
			item.CreatedAt = &createdAt
		}
		out = append(out, item)
	}

	c.JSON(http.StatusOK, out)
}
