package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
)

// UniqueViolation names the column whose uniqueness constraint rejected a
// write.
type UniqueViolation struct {
	Field string
}

// UserWriteResult is either the stored user or the uniqueness violation that
// prevented the write. Errors unrelated to uniqueness are returned separately.
type UserWriteResult struct {
	User      *domain.User
	Violation *UniqueViolation
}

func (r UserWriteResult) Conflict() bool {
	return r.Violation != nil
}

// UserRepository returns (nil, nil) from the lookups when no user matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (UserWriteResult, error)
	Update(ctx context.Context, user *domain.User) (UserWriteResult, error)
}
