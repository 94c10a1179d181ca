package auth

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/akulagin/clubhouse/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newSessionCodec),
)

type hasherParams struct {
	fx.In

	Config *config.Config
}

func newPasswordHasher(p hasherParams) (PasswordHasher, error) {
	switch p.Config.PasswordDriver {
	case "", config.PasswordDriverBcrypt:
		return NewBcryptHasher(p.Config.BcryptCost), nil
	case config.PasswordDriverArgon2id:
		return NewArgon2idHasher(), nil
	default:
		return nil, fmt.Errorf("unknown password driver %q", p.Config.PasswordDriver)
	}
}

type codecParams struct {
	fx.In

	Config *config.Config
}

func newSessionCodec(p codecParams) SessionCodec {
	return NewHMACCodec(p.Config.SessionSecret, Options{TTL: p.Config.SessionTTL})
}
