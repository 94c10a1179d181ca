package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"unknown user", ErrUnknownUser},
		{"bad password", ErrBadPassword},
		{"bad secret", ErrBadSecret},
		{"invalid name", ErrInvalidName},
		{"password too short", ErrPasswordTooShort},
		{"password mismatch", ErrPasswordMismatch},
		{"invalid title", ErrInvalidTitle},
		{"invalid body", ErrInvalidBody},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestPipelineSentinelsAreDistinct(t *testing.T) {
	if stdErrors.Is(ErrUnknownUser, ErrBadPassword) || stdErrors.Is(ErrBadPassword, ErrBadSecret) {
		t.Fatal("pipeline stage errors must be distinguishable")
	}
}
