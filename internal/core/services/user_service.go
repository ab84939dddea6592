package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) ports.UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFoundOrForbidden
	}
	return user, nil
}

func (s *UserService) Edit(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	user.UpdatedAt = time.Now()

	res, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if res.Conflict() {
		return nil, &domain.EmailTakenError{Email: user.Email}
	}
	if res.User == nil {
		return nil, domain.ErrNotFoundOrForbidden
	}
	return res.User, nil
}
