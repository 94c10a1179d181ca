package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/domain/model"
	pkgAuth "github.com/akulagin/clubhouse/internal/pkg/auth"
	"github.com/akulagin/clubhouse/internal/test"
)

func validInput() model.Registration {
	return model.Registration{
		FirstName:       "Alice",
		LastName:        "Smith",
		Username:        "alice",
		Password:        "sup3rsecret",
		PasswordConfirm: "sup3rsecret",
	}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, test.HasherStub{}, test.CodecStub{})

	user, err := uc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected username: %s", user.Username)
	}
	if user.PasswordHash != "hash:sup3rsecret" {
		t.Fatalf("password was not hashed: %s", user.PasswordHash)
	}
	if user.Member {
		t.Fatal("new user must not be a member")
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, test.HasherStub{}, test.CodecStub{})

	if _, err := uc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := uc.Register(context.Background(), validInput()); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Registration)
		want   error
	}{
		{"empty first name", func(in *model.Registration) { in.FirstName = "" }, domainErrors.ErrInvalidName},
		{"digits in last name", func(in *model.Registration) { in.LastName = "Sm1th" }, domainErrors.ErrInvalidName},
		{"name too long", func(in *model.Registration) { in.FirstName = "Aaaaaaaaaaaaa" }, domainErrors.ErrInvalidName},
		{"short password", func(in *model.Registration) { in.Password, in.PasswordConfirm = "short", "short" }, domainErrors.ErrPasswordTooShort},
		{"confirmation mismatch", func(in *model.Registration) { in.PasswordConfirm = "sup3rsecreT" }, domainErrors.ErrPasswordMismatch},
		{"empty username", func(in *model.Registration) { in.Username = "  " }, domainErrors.ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := test.NewUserRepositoryStub()
			uc := NewAuthUseCase(repo, test.HasherStub{}, test.CodecStub{})
			in := validInput()
			tc.mutate(&in)
			if _, err := uc.Register(context.Background(), in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(repo.Users) != 0 {
				t.Fatal("invalid input must not reach the repository")
			}
		})
	}
}

func TestAuthUseCaseRegisterHasherError(t *testing.T) {
	hashErr := errors.New("boom")
	hasher := test.HasherStub{HashFn: func(string) (string, error) { return "", hashErr }}
	uc := NewAuthUseCase(test.NewUserRepositoryStub(), hasher, test.CodecStub{})

	if _, err := uc.Register(context.Background(), validInput()); !errors.Is(err, hashErr) {
		t.Fatalf("expected hasher error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateSuccess(t *testing.T) {
	repo := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, test.HasherStub{}, test.CodecStub{})

	if _, err := uc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	user, err := uc.Authenticate(context.Background(), "alice", "sup3rsecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %s", user.Username)
	}
}

func TestAuthUseCaseAuthenticateUnknownUser(t *testing.T) {
	compares := 0
	hasher := test.HasherStub{CompareFn: func(string, string) error {
		compares++
		return errors.New("mismatch")
	}}
	uc := NewAuthUseCase(test.NewUserRepositoryStub(), hasher, test.CodecStub{})

	if _, err := uc.Authenticate(context.Background(), "ghost", "whatever1"); !errors.Is(err, domainErrors.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if compares != 1 {
		t.Fatalf("unknown user must still cost one comparison, got %d", compares)
	}
}

func TestAuthUseCaseAuthenticateBadPassword(t *testing.T) {
	repo := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, test.HasherStub{}, test.CodecStub{})

	if _, err := uc.Register(context.Background(), validInput()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if _, err := uc.Authenticate(context.Background(), "alice", "wrongpass"); !errors.Is(err, domainErrors.ErrBadPassword) {
		t.Fatalf("expected ErrBadPassword, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateEmptyInput(t *testing.T) {
	uc := NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, test.CodecStub{})
	if _, err := uc.Authenticate(context.Background(), "", "pass"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := uc.Authenticate(context.Background(), "alice", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateRepositoryError(t *testing.T) {
	repoErr := errors.New("storage down")
	repo := test.NewUserRepositoryStub()
	repo.Err = repoErr
	uc := NewAuthUseCase(repo, test.HasherStub{}, test.CodecStub{})

	if _, err := uc.Authenticate(context.Background(), "alice", "sup3rsecret"); !errors.Is(err, repoErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestAuthUseCaseBindSession(t *testing.T) {
	uc := NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, test.CodecStub{})

	token, err := uc.BindSession(&model.User{ID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token:7" {
		t.Fatalf("unexpected token: %s", token)
	}

	if _, err := uc.BindSession(nil); !errors.Is(err, pkgAuth.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for nil user, got %v", err)
	}
}

func TestAuthUseCaseResolveSession(t *testing.T) {
	repo := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, test.HasherStub{}, test.CodecStub{})

	registered, err := uc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	token, err := uc.BindSession(registered)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	user, err := uc.ResolveSession(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("resolved wrong user: %d", user.ID)
	}
}

func TestAuthUseCaseResolveSessionDeletedUser(t *testing.T) {
	repo := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, test.HasherStub{}, test.CodecStub{})

	registered, err := uc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	token, err := uc.BindSession(registered)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	if err := repo.Delete(context.Background(), "alice"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := uc.ResolveSession(context.Background(), token); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after deletion, got %v", err)
	}
}

func TestAuthUseCaseResolveSessionInvalidToken(t *testing.T) {
	uc := NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, test.CodecStub{})

	if _, err := uc.ResolveSession(context.Background(), ""); !errors.Is(err, pkgAuth.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for empty token, got %v", err)
	}
	if _, err := uc.ResolveSession(context.Background(), "garbage"); !errors.Is(err, pkgAuth.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for garbage token, got %v", err)
	}
}
