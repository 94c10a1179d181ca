package handlers

import (
	"context"

	"github.com/akulagin/clubhouse/internal/domain/model"
	"github.com/akulagin/clubhouse/internal/server/http/middleware"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in model.Registration) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// MembershipFacade exposes the upgrade pipeline.
type MembershipFacade interface {
	UpgradeMembership(ctx context.Context, username, password, secret string) (model.MembershipOutcome, error)
}

// BoardFacade provides message board operations.
type BoardFacade interface {
	PostMessage(ctx context.Context, userID int64, title, body string) (*model.Message, error)
	Board(ctx context.Context, member bool) ([]model.Message, error)
}

// ClubFacade aggregates the full set of operations used across handlers.
type ClubFacade interface {
	AuthFacade
	MembershipFacade
	BoardFacade
	middleware.SessionResolver
}
