package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests. All operations are
// mutex-guarded so concurrency tests can hammer it from many goroutines.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error

	GetByUsernameFn   func(context.Context, string) (*model.User, error)
	GrantMembershipFn func(context.Context, string) (bool, error)
	GrantCalls        int
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, firstName, lastName, username, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           s.Next,
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.Next++
	s.Users[username] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByUsername fetches user by username or returns not found.
func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.GetByUsernameFn != nil {
		return s.GetByUsernameFn(ctx, username)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[username]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MembershipStatus reports the membership flag for username.
func (s *UserRepositoryStub) MembershipStatus(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	user, ok := s.Users[username]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	return user.Member, nil
}

// GrantMembership flips the flag conditionally, mirroring the single
// compare-and-set statement of the real repository.
func (s *UserRepositoryStub) GrantMembership(ctx context.Context, username string) (bool, error) {
	if s.GrantMembershipFn != nil {
		return s.GrantMembershipFn(ctx, username)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GrantCalls++
	if s.Err != nil {
		return false, s.Err
	}
	user, ok := s.Users[username]
	if !ok {
		return false, nil
	}
	if user.Member {
		return false, nil
	}
	user.Member = true
	return true, nil
}

// Delete removes a user, simulating an account deleted mid-session.
func (s *UserRepositoryStub) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.Users[username]
	if !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.ByID, user.ID)
	delete(s.Users, username)
	return nil
}

// MessageRepositoryStub stores board messages in-memory for tests.
type MessageRepositoryStub struct {
	mu       sync.Mutex
	Messages []model.Message
	Next     int64
	Err      error

	DeleteOlderThanFn func(context.Context, time.Time, int) (int64, error)
	DeleteCalls       []int
}

// Create appends a new message and returns it.
func (s *MessageRepositoryStub) Create(ctx context.Context, userID int64, title, body string) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	msg := model.Message{ID: s.Next, UserID: userID, Title: title, Body: body, CreatedAt: time.Now()}
	s.Next++
	s.Messages = append(s.Messages, msg)
	return &msg, nil
}

// List returns stored messages newest-first.
func (s *MessageRepositoryStub) List(ctx context.Context) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Message, len(s.Messages))
	for i := range s.Messages {
		out[len(s.Messages)-1-i] = s.Messages[i]
	}
	return out, nil
}

// DeleteOlderThan drops messages posted before cutoff, at most limit.
func (s *MessageRepositoryStub) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	if s.DeleteOlderThanFn != nil {
		return s.DeleteOlderThanFn(ctx, cutoff, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls = append(s.DeleteCalls, limit)
	if s.Err != nil {
		return 0, s.Err
	}
	var kept []model.Message
	var deleted int64
	for _, m := range s.Messages {
		if m.CreatedAt.Before(cutoff) && int(deleted) < limit {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	s.Messages = kept
	return deleted, nil
}

// SecretRepositoryStub holds the membership passphrase for tests.
type SecretRepositoryStub struct {
	mu       sync.Mutex
	Secret   string
	Err      error
	GetFn    func(context.Context) (string, error)
	GetCalls int
}

// Get returns the configured secret or error.
func (s *SecretRepositoryStub) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	s.GetCalls++
	fn, err, secret := s.GetFn, s.Err, s.Secret
	s.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", domainErrors.ErrNotFound
	}
	return secret, nil
}

// Seed stores the secret unless one is already present.
func (s *SecretRepositoryStub) Seed(ctx context.Context, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.Secret == "" {
		s.Secret = secret
	}
	return nil
}
