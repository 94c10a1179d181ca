package repository

import (
	"context"

	"github.com/akulagin/clubhouse/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, firstName, lastName, username, passwordHash string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	MembershipStatus(ctx context.Context, username string) (bool, error)
	// GrantMembership flips membership_status to true as a single
	// conditional update. It reports false when the user already was a
	// member, so concurrent upgrades apply the flag exactly once.
	GrantMembership(ctx context.Context, username string) (bool, error)
	// Delete removes the account; board messages cascade with it.
	Delete(ctx context.Context, username string) error
}
