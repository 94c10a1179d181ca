package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrMalformedDigest marks a stored hash that cannot be parsed.
	ErrMalformedDigest = errors.New("malformed password digest")
	// ErrHashMismatch reports a password that does not match its digest.
	ErrHashMismatch = errors.New("password does not match digest")
)

// Argon2idHasher hashes passwords with Argon2id in PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
//
// Parameters are encoded into the digest, so existing hashes stay
// verifiable after the defaults change.
type Argon2idHasher struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	saltLen uint32
}

// NewArgon2idHasher creates a hasher with the recommended cost parameters
// (64 MiB memory, 3 passes, 2 lanes).
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{
		memory:  64 * 1024,
		time:    3,
		threads: 2,
		keyLen:  32,
		saltLen: 16,
	}
}

// Hash derives a salted Argon2id digest for the password.
func (h *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Compare re-derives the key with the parameters embedded in the digest
// and compares in constant time.
func (h *Argon2idHasher) Compare(hash string, password string) error {
	params, salt, want, err := parsePHC(hash)
	if err != nil {
		return err
	}

	got := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrHashMismatch
	}
	return nil
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func parsePHC(hash string) (argon2Params, []byte, []byte, error) {
	var params argon2Params

	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, ErrMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, ErrMalformedDigest
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return params, nil, nil, ErrMalformedDigest
	}
	if params.memory == 0 || params.time == 0 || params.threads == 0 {
		return params, nil, nil, ErrMalformedDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, ErrMalformedDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params, nil, nil, ErrMalformedDigest
	}

	return params, salt, key, nil
}
