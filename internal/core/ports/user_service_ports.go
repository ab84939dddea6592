package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Edit(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)
}
