package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
)

type BookmarkRepository struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]domain.Bookmark
	order []uuid.UUID
}

func NewBookmarkRepository() *BookmarkRepository {
	return &BookmarkRepository{
		rows: make(map[uuid.UUID]domain.Bookmark),
	}
}

var _ ports.BookmarkRepository = (*BookmarkRepository)(nil)

func (r *BookmarkRepository) Save(ctx context.Context, bookmark *domain.Bookmark) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[bookmark.ID]; exists {
		return fmt.Errorf("failed to insert bookmark: duplicate id %s", bookmark.ID)
	}
	r.rows[bookmark.ID] = *bookmark
	r.order = append(r.order, bookmark.ID)
	return nil
}

func (r *BookmarkRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// ListByOwner returns bookmarks in insertion order.
func (r *BookmarkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookmarks := []*domain.Bookmark{}
	for _, id := range r.order {
		b := r.rows[id]
		if b.UserID == ownerID {
			bookmarks = append(bookmarks, &b)
		}
	}
	return bookmarks, nil
}

func (r *BookmarkRepository) Update(ctx context.Context, bookmark *domain.Bookmark) (*domain.Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[bookmark.ID]
	if !ok {
		return nil, nil
	}

	stored := *bookmark
	// ownership is fixed at creation
	stored.UserID = current.UserID
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now()
	r.rows[stored.ID] = stored

	return &stored, nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	delete(r.rows, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &b, nil
}

func (r *BookmarkRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
