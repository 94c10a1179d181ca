package app

import (
	"context"
	"time"

	"github.com/akulagin/clubhouse/internal/domain/model"
	"github.com/akulagin/clubhouse/internal/usecase"
)

// ClubFacade stitches use cases into the surface the HTTP layer and the
// retention sweeper consume.
type ClubFacade struct {
	auth       *usecase.AuthUseCase
	membership *usecase.MembershipUseCase
	messages   *usecase.MessageUseCase
}

func NewClubFacade(auth *usecase.AuthUseCase, membership *usecase.MembershipUseCase, messages *usecase.MessageUseCase) *ClubFacade {
	return &ClubFacade{auth: auth, membership: membership, messages: messages}
}

// Register creates the account and immediately opens a session for it.
func (f *ClubFacade) Register(ctx context.Context, in model.Registration) (string, error) {
	user, err := f.auth.Register(ctx, in)
	if err != nil {
		return "", err
	}
	return f.auth.BindSession(user)
}

func (f *ClubFacade) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := f.auth.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return f.auth.BindSession(user)
}

func (f *ClubFacade) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	return f.auth.ResolveSession(ctx, token)
}

func (f *ClubFacade) UpgradeMembership(ctx context.Context, username, password, secret string) (model.MembershipOutcome, error) {
	return f.membership.Upgrade(ctx, username, password, secret)
}

func (f *ClubFacade) PostMessage(ctx context.Context, userID int64, title, body string) (*model.Message, error) {
	return f.messages.Post(ctx, userID, title, body)
}

func (f *ClubFacade) Board(ctx context.Context, member bool) ([]model.Message, error) {
	return f.messages.Board(ctx, member)
}

func (f *ClubFacade) PruneMessages(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	return f.messages.Prune(ctx, cutoff, limit)
}
