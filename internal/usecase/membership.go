package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/domain/model"
	"github.com/akulagin/clubhouse/internal/domain/repository"
	pkgAuth "github.com/akulagin/clubhouse/internal/pkg/auth"
)

// MembershipUseCase runs the membership upgrade pipeline: an ordered,
// short-circuiting chain of checks that must all pass before the
// membership flag is flipped.
type MembershipUseCase struct {
	users   repository.UserRepository
	secrets repository.SecretRepository
	hasher  pkgAuth.PasswordHasher
}

// NewMembershipUseCase constructs MembershipUseCase.
func NewMembershipUseCase(users repository.UserRepository, secrets repository.SecretRepository, hasher pkgAuth.PasswordHasher) *MembershipUseCase {
	return &MembershipUseCase{users: users, secrets: secrets, hasher: hasher}
}

// ValidationContext threads intermediate pipeline results from one stage
// to the next. It lives for a single Upgrade call and is never persisted.
type ValidationContext struct {
	Username string
	Password string
	Secret   string
	User     *model.User
}

type stage func(ctx context.Context, vc ValidationContext) (ValidationContext, error)

// Upgrade verifies identity, password and the shared secret in that
// order; any stage failure aborts the run with the stage's error and no
// mutation. After all stages pass, membership is granted through a single
// conditional update, so concurrent runs for the same user apply the flag
// exactly once.
func (u *MembershipUseCase) Upgrade(ctx context.Context, username, password, secret string) (model.MembershipOutcome, error) {
	vc := ValidationContext{
		Username: strings.TrimSpace(username),
		Password: password,
		Secret:   secret,
	}

	for _, run := range u.stages() {
		var err error
		if vc, err = run(ctx, vc); err != nil {
			return "", err
		}
	}

	granted, err := u.users.GrantMembership(ctx, vc.User.Username)
	if err != nil {
		return "", err
	}
	if !granted {
		return model.MembershipAlreadyMember, nil
	}
	return model.MembershipUpgraded, nil
}

func (u *MembershipUseCase) stages() []stage {
	return []stage{u.checkIdentity, u.checkPassword, u.checkSecret}
}

// checkIdentity resolves the user and stashes it for later stages.
func (u *MembershipUseCase) checkIdentity(ctx context.Context, vc ValidationContext) (ValidationContext, error) {
	usr, err := u.users.GetByUsername(ctx, vc.Username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return vc, domainErrors.ErrUnknownUser
		}
		return vc, err
	}
	vc.User = usr
	return vc, nil
}

// checkPassword verifies against the hash of the user resolved in the
// identity stage.
func (u *MembershipUseCase) checkPassword(ctx context.Context, vc ValidationContext) (ValidationContext, error) {
	if err := u.hasher.Compare(vc.User.PasswordHash, vc.Password); err != nil {
		return vc, domainErrors.ErrBadPassword
	}
	return vc, nil
}

// checkSecret fetches the shared secret fresh on every run, so a rotated
// secret takes effect immediately.
func (u *MembershipUseCase) checkSecret(ctx context.Context, vc ValidationContext) (ValidationContext, error) {
	want, err := u.secrets.Get(ctx)
	if err != nil {
		return vc, err
	}
	if subtle.ConstantTimeCompare([]byte(vc.Secret), []byte(want)) != 1 {
		return vc, domainErrors.ErrBadSecret
	}
	return vc, nil
}
