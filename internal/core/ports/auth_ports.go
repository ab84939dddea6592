package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
)

type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify reports a mismatch as (false, nil). An error means the stored
	// hash could not be decoded or the work could not be scheduled.
	Verify(ctx context.Context, storedHash, plaintext string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
	Validate(token string) (domain.Principal, error)
}

type Credentials struct {
	Email    string
	Password string
}

type AuthToken struct {
	AccessToken string `json:"access_token"`
}

type AuthService interface {
	SignUp(ctx context.Context, creds Credentials) (*AuthToken, error)
	SignIn(ctx context.Context, creds Credentials) (*AuthToken, error)
}
