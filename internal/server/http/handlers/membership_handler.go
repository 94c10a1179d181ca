package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/server/http/dto"
)

// MembershipHandler processes club membership upgrades.
type MembershipHandler struct {
	facade MembershipFacade
}

// NewMembershipHandler creates MembershipHandler instance.
func NewMembershipHandler(facade MembershipFacade) *MembershipHandler {
	return &MembershipHandler{facade: facade}
}

// Upgrade handles POST /api/user/membership. Unlike login, the failure
// message names the stage that rejected the attempt.
func (h *MembershipHandler) Upgrade(c *gin.Context) {
	var req dto.MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	outcome, err := h.facade.UpgradeMembership(c.Request.Context(), req.Username, req.Password, req.Secret)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnknownUser),
			errors.Is(err, domainErrors.ErrBadPassword),
			errors.Is(err, domainErrors.ErrBadSecret):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.MembershipResponse{Status: string(outcome)})
}
