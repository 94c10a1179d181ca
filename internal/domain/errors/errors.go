package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Stage-specific failures of the membership upgrade pipeline.
	ErrUnknownUser = errors.New("unknown user")
	ErrBadPassword = errors.New("incorrect password")
	ErrBadSecret   = errors.New("incorrect secret code")

	// Registration and board input validation.
	ErrInvalidName      = errors.New("name must contain 1 to 12 letters")
	ErrPasswordTooShort = errors.New("password must contain at least 8 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidTitle     = errors.New("title must contain 1 to 120 characters")
	ErrInvalidBody      = errors.New("message must contain 1 to 1000 characters")
)
