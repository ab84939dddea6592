package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
	"github.com/vncsmyrnk/bookmarks/internal/logging"
)

type bookmarkService struct {
	repo   ports.BookmarkRepository
	guard  *OwnershipGuard
	logger logging.Logger
}

func NewBookmarkService(repo ports.BookmarkRepository, logger logging.Logger) ports.BookmarkService {
	return &bookmarkService{
		repo:   repo,
		guard:  NewOwnershipGuard(repo),
		logger: logger,
	}
}

func (s *bookmarkService) Create(ctx context.Context, ownerID uuid.UUID, fields domain.BookmarkFields) (*domain.Bookmark, error) {
	now := time.Now()
	bookmark := &domain.Bookmark{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       fields.Title,
		Link:        fields.Link,
		Description: fields.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Save(ctx, bookmark); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "bookmark created", "bookmark_id", bookmark.ID, "user_id", ownerID)
	return bookmark, nil
}

func (s *bookmarkService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Bookmark, error) {
	bookmarks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if bookmarks == nil {
		bookmarks = []*domain.Bookmark{}
	}
	return bookmarks, nil
}

func (s *bookmarkService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Bookmark, error) {
	return s.guard.Authorize(ctx, ownerID, id)
}

func (s *bookmarkService) Update(ctx context.Context, ownerID, id uuid.UUID, patch domain.BookmarkPatch) (*domain.Bookmark, error) {
	bookmark, err := s.guard.Authorize(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(bookmark)
	bookmark.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, bookmark)
	if err != nil {
		return nil, fmt.Errorf("failed to update bookmark: %w", err)
	}
	// deleted between the guard and the write
	if updated == nil {
		return nil, domain.ErrNotFoundOrForbidden
	}
	return updated, nil
}

func (s *bookmarkService) Delete(ctx context.Context, ownerID, id uuid.UUID) (*domain.Bookmark, error) {
	if _, err := s.guard.Authorize(ctx, ownerID, id); err != nil {
		return nil, err
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if removed == nil {
		return nil, domain.ErrNotFoundOrForbidden
	}

	s.logger.Debug(ctx, "bookmark deleted", "bookmark_id", id, "user_id", ownerID)
	return removed, nil
}
