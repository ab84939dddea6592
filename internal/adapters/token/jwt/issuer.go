// Package jwt issues and validates the HS256 access tokens handed out on
// sign-up and sign-in.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
)

const AccessTokenTTL = 15 * time.Minute

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.TokenIssuer = (*Issuer)(nil)

func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, domain.ErrSecretRequired
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    AccessTokenTTL,
		now:    time.Now,
	}, nil
}

func (i *Issuer) Issue(userID uuid.UUID, email string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate returns domain.ErrTokenExpired for a correctly signed token past
// its expiry and domain.ErrTokenInvalid for anything else it rejects.
func (i *Issuer) Validate(tokenString string) (domain.Principal, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(tokenString, c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
		}
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: subject is not a user id", domain.ErrTokenInvalid)
	}
	if c.Email == "" {
		return domain.Principal{}, fmt.Errorf("%w: missing email claim", domain.ErrTokenInvalid)
	}

	return domain.Principal{UserID: userID, Email: c.Email}, nil
}
