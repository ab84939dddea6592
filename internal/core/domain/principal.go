package domain

import "github.com/google/uuid"

// Principal is the identity carried by a validated access token.
type Principal struct {
	UserID uuid.UUID
	Email  string
}
