package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
)

type bookmarkRepository struct {
	db *sql.DB
}

func NewBookmarkRepository(db *sql.DB) ports.BookmarkRepository {
	return &bookmarkRepository{
		db: db,
	}
}

const bookmarkColumns = `id, user_id, title, link, description, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row rowScanner) (*domain.Bookmark, error) {
	var b domain.Bookmark
	if err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Link, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookmarkRepository) Save(ctx context.Context, bookmark *domain.Bookmark) error {
	query := `
		INSERT INTO bookmarks (id, user_id, title, link, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		bookmark.ID, bookmark.UserID, bookmark.Title, bookmark.Link, bookmark.Description, bookmark.CreatedAt, bookmark.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

func (r *bookmarkRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE id = $1`
	return r.one(r.db.QueryRowContext(ctx, query, id), "get")
}

func (r *bookmarkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Bookmark, error) {
	query := `
		SELECT ` + bookmarkColumns + `
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []*domain.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookmarks: %w", err)
	}
	return bookmarks, nil
}

// Update leaves user_id and created_at alone.
func (r *bookmarkRepository) Update(ctx context.Context, bookmark *domain.Bookmark) (*domain.Bookmark, error) {
	query := `
		UPDATE bookmarks
		SET title = $1, link = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + bookmarkColumns
	row := r.db.QueryRowContext(ctx, query, bookmark.Title, bookmark.Link, bookmark.Description, bookmark.ID)
	return r.one(row, "update")
}

func (r *bookmarkRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Bookmark, error) {
	query := `DELETE FROM bookmarks WHERE id = $1 RETURNING ` + bookmarkColumns
	return r.one(r.db.QueryRowContext(ctx, query, id), "delete")
}

func (r *bookmarkRepository) one(row *sql.Row, op string) (*domain.Bookmark, error) {
	b, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to %s bookmark: %w", op, err)
	}
	return b, nil
}
