package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/domain/model"
	"github.com/akulagin/clubhouse/internal/domain/repository"
	pkgAuth "github.com/akulagin/clubhouse/internal/pkg/auth"
)

// AuthUseCase handles registration, credential verification and session
// identity binding.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	sessions pkgAuth.SessionCodec

	// decoy is a digest of a throwaway value. Authenticate burns a
	// comparison against it when the username is unknown, so unknown-user
	// and wrong-password failures cost the same.
	decoy string
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, sessions pkgAuth.SessionCodec) *AuthUseCase {
	uc := &AuthUseCase{users: users, hasher: hasher, sessions: sessions}
	if digest, err := hasher.Hash("clubhouse-decoy"); err == nil {
		uc.decoy = digest
	}
	return uc
}

// Register validates the sign-up form, hashes the password and creates
// the user.
func (u *AuthUseCase) Register(ctx context.Context, in model.Registration) (*model.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)

	if err := ValidateRegistration(in); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, in.FirstName, in.LastName, in.Username, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}

	return usr, nil
}

// Authenticate resolves the user by username and verifies the password
// against the stored hash. The lookup is an exact match on the stored
// identifier; neither failure mutates any state.
func (u *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			if u.decoy != "" {
				_ = u.hasher.Compare(u.decoy, password)
			}
			return nil, domainErrors.ErrUnknownUser
		}
		return nil, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrBadPassword
	}

	return usr, nil
}

// BindSession converts an authenticated user into an opaque session
// token. Only the user ID enters the token.
func (u *AuthUseCase) BindSession(user *model.User) (string, error) {
	if user == nil {
		return "", pkgAuth.ErrInvalidSession
	}
	return u.sessions.Bind(user.ID)
}

// ResolveSession maps a session token back to the current user record.
// The record is re-fetched from storage on every call; a user deleted
// since login resolves to domain ErrNotFound, not a failure of the
// process.
func (u *AuthUseCase) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidSession
	}
	id, err := u.sessions.Resolve(token)
	if err != nil {
		return nil, err
	}
	return u.users.GetByID(ctx, id)
}
