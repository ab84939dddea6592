package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
	"github.com/vncsmyrnk/bookmarks/internal/logging"
)

type AuthService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	logger   logging.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(userRepo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger logging.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// SignUp stores a new user and returns its first access token. A taken
// email is reported as *domain.EmailTakenError; any other store failure is
// returned wrapped.
func (s *AuthService) SignUp(ctx context.Context, creds ports.Credentials) (*ports.AuthToken, error) {
	hash, err := s.hasher.Hash(ctx, creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.userRepo.Create(ctx, &domain.User{
		Email:        creds.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if res.Conflict() {
		return nil, &domain.EmailTakenError{Email: creds.Email}
	}
	if res.User == nil {
		return nil, fmt.Errorf("failed to create user: %w", domain.ErrInternal)
	}

	s.logger.Info(ctx, "user signed up", "user_id", res.User.ID)
	return s.signToken(res.User)
}

// SignIn answers ErrInvalidCredentials both for unknown emails and for wrong
// passwords.
func (s *AuthService) SignIn(ctx context.Context, creds ports.Credentials) (*ports.AuthToken, error) {
	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(ctx, user.PasswordHash, creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return s.signToken(user)
}

func (s *AuthService) signToken(user *domain.User) (*ports.AuthToken, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	return &ports.AuthToken{AccessToken: token}, nil
}
