package usecase

import (
	"unicode"
	"unicode/utf8"

	domainErrors "github.com/akulagin/clubhouse/internal/domain/errors"
	"github.com/akulagin/clubhouse/internal/domain/model"
)

const (
	maxNameLength     = 12
	minPasswordLength = 8
	maxTitleLength    = 120
	maxBodyLength     = 1000
)

// ValidateName checks that a first or last name contains 1 to 12 letters.
func ValidateName(name string) bool {
	length := utf8.RuneCountInString(name)
	if length < 1 || length > maxNameLength {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidateRegistration checks all sign-up form fields.
func ValidateRegistration(in model.Registration) error {
	if !ValidateName(in.FirstName) || !ValidateName(in.LastName) {
		return domainErrors.ErrInvalidName
	}
	if in.Username == "" {
		return domainErrors.ErrInvalidCredentials
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return domainErrors.ErrPasswordTooShort
	}
	if in.Password != in.PasswordConfirm {
		return domainErrors.ErrPasswordMismatch
	}
	return nil
}

// ValidateMessage checks board post bounds: title 1..120 characters,
// body 1..1000 characters.
func ValidateMessage(title, body string) error {
	titleLen := utf8.RuneCountInString(title)
	if titleLen < 1 || titleLen > maxTitleLength {
		return domainErrors.ErrInvalidTitle
	}
	bodyLen := utf8.RuneCountInString(body)
	if bodyLen < 1 || bodyLen > maxBodyLength {
		return domainErrors.ErrInvalidBody
	}
	return nil
}
