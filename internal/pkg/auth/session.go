package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidSession = errors.New("invalid session token")

// SessionCodec maps an authenticated user ID to an opaque session token
// and back. The token carries nothing but the ID and an expiry; the full
// user record is re-resolved from storage on every request.
type SessionCodec interface {
	Bind(userID int64) (string, error)
	Resolve(token string) (int64, error)
}

type Options struct {
	TTL time.Duration
}

// HMACCodec signs session tokens with HMAC-SHA256.
type HMACCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACCodec builds HMACCodec with provided secret and options.
func NewHMACCodec(secret string, opts Options) *HMACCodec {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HMACCodec{secret: []byte(secret), ttl: ttl}
}

// Bind generates a signed session token for the user ID.
func (c *HMACCodec) Bind(userID int64) (string, error) {
	expires := time.Now().Add(c.ttl).Unix()
	payload := fmt.Sprintf("%d:%d", userID, expires)
	token := fmt.Sprintf("%s:%s", payload, c.sign(payload))
	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// Resolve validates the token and returns the encoded user ID.
func (c *HMACCodec) Resolve(token string) (int64, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidSession
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return 0, ErrInvalidSession
	}

	payload := strings.Join(parts[:2], ":")
	expectedSig := c.sign(payload)
	if !hmac.Equal([]byte(expectedSig), []byte(parts[2])) {
		return 0, ErrInvalidSession
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidSession
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidSession
	}

	if time.Unix(expires, 0).Before(time.Now()) {
		return 0, ErrInvalidSession
	}

	return userID, nil
}

func (c *HMACCodec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
