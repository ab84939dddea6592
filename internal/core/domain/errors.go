package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken          = errors.New("email is already taken")
	ErrInvalidCredentials  = errors.New("incorrect credentials")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrNotFoundOrForbidden = errors.New("resource not found or access denied")
	ErrHashing             = errors.New("password hashing failed")
	ErrSecretRequired      = errors.New("signing secret is required")
	ErrInternal            = errors.New("internal server error")
)

// EmailTakenError reports a sign-up or profile edit that collided with an
// existing user's email. It matches ErrEmailTaken under errors.Is.
type EmailTakenError struct {
	Email string
}

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("%s is taken", e.Email)
}

func (e *EmailTakenError) Is(target error) bool {
	return target == ErrEmailTaken
}
