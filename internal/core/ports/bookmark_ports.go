package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
)

// BookmarkRepository returns (nil, nil) from GetByID, Update and Delete when
// the row does not exist.
type BookmarkRepository interface {
	Save(ctx context.Context, bookmark *domain.Bookmark) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Bookmark, error)
	Update(ctx context.Context, bookmark *domain.Bookmark) (*domain.Bookmark, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error)
}

type BookmarkService interface {
	Create(ctx context.Context, ownerID uuid.UUID, fields domain.BookmarkFields) (*domain.Bookmark, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Bookmark, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Bookmark, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.BookmarkPatch) (*domain.Bookmark, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*domain.Bookmark, error)
}
