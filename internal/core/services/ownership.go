package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
)

// OwnershipGuard binds a principal to a bookmark on every call. Missing
// bookmarks and bookmarks of other users produce the same error.
type OwnershipGuard struct {
	repo ports.BookmarkRepository
}

func NewOwnershipGuard(repo ports.BookmarkRepository) *OwnershipGuard {
	return &OwnershipGuard{repo: repo}
}

func (g *OwnershipGuard) Authorize(ctx context.Context, ownerID, bookmarkID uuid.UUID) (*domain.Bookmark, error) {
	bookmark, err := g.repo.GetByID(ctx, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}
	if !domain.CanAccess(ownerID, bookmark) {
		return nil, domain.ErrNotFoundOrForbidden
	}
	return bookmark, nil
}
