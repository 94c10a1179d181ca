package test

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	pkgAuth "github.com/akulagin/clubhouse/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// CodecStub issues and resolves session tokens via function overrides.
type CodecStub struct {
	BindFn    func(int64) (string, error)
	ResolveFn func(string) (int64, error)
}

// Bind returns deterministic tokens for tests.
func (s CodecStub) Bind(userID int64) (string, error) {
	if s.BindFn != nil {
		return s.BindFn(userID)
	}
	return fmt.Sprintf("token:%d", userID), nil
}

// Resolve parses tokens previously produced by Bind.
func (s CodecStub) Resolve(token string) (int64, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(token)
	}
	raw, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return 0, pkgAuth.ErrInvalidSession
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgAuth.ErrInvalidSession
	}
	return id, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.SessionCodec = CodecStub{}
