package test

import (
	"context"
	"sync"
	"time"

	"github.com/akulagin/clubhouse/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, model.Registration) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, in model.Registration) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return "token:1", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, username, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, username, password)
	}
	return "token:1", nil
}

// SessionResolverStub implements the middleware identity contract.
type SessionResolverStub struct {
	User      *model.User
	Err       error
	ResolveFn func(context.Context, string) (*model.User, error)
}

// ResolveSession either delegates to override or returns predefined result.
func (s SessionResolverStub) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.User, nil
}

// MembershipFacadeStub simulates the upgrade pipeline for HTTP tests.
type MembershipFacadeStub struct {
	UpgradeFn func(context.Context, string, string, string) (model.MembershipOutcome, error)
}

// UpgradeMembership delegates to override or reports a fresh upgrade.
func (s MembershipFacadeStub) UpgradeMembership(ctx context.Context, username, password, secret string) (model.MembershipOutcome, error) {
	if s.UpgradeFn != nil {
		return s.UpgradeFn(ctx, username, password, secret)
	}
	return model.MembershipUpgraded, nil
}

// BoardFacadeStub provides controllable behaviour for board endpoints.
type BoardFacadeStub struct {
	PostFn  func(context.Context, int64, string, string) (*model.Message, error)
	BoardFn func(context.Context, bool) ([]model.Message, error)
	PruneFn func(context.Context, time.Time, int) (int64, error)

	mu     sync.Mutex
	Prunes []int
}

// PostMessage delegates to provided function or returns a default message.
func (s *BoardFacadeStub) PostMessage(ctx context.Context, userID int64, title, body string) (*model.Message, error) {
	if s.PostFn != nil {
		return s.PostFn(ctx, userID, title, body)
	}
	return &model.Message{ID: 1, UserID: userID, Title: title, Body: body, CreatedAt: time.Unix(0, 0)}, nil
}

// Board returns predefined messages.
func (s *BoardFacadeStub) Board(ctx context.Context, member bool) ([]model.Message, error) {
	if s.BoardFn != nil {
		return s.BoardFn(ctx, member)
	}
	return []model.Message{{ID: 1, Title: "hello", Body: "world"}}, nil
}

// PruneMessages records sweep invocations.
func (s *BoardFacadeStub) PruneMessages(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	if s.PruneFn != nil {
		return s.PruneFn(ctx, cutoff, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prunes = append(s.Prunes, limit)
	return 0, nil
}

// PruneCount reports how many sweeps have run.
func (s *BoardFacadeStub) PruneCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prunes)
}

// ClubFacadeStub aggregates facade dependencies for HTTP layer tests.
type ClubFacadeStub struct {
	AuthFacadeStub
	SessionResolverStub
	MembershipFacadeStub
	BoardFacadeStub
}
