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

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

const userColumns = `id, email, password_hash, first_name, last_name, created_at, updated_at`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (ports.UserWriteResult, error) {
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, user.FirstName, user.LastName).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if v, ok := asUniqueViolation(err, "users"); ok {
			return ports.UserWriteResult{Violation: v}, nil
		}
		return ports.UserWriteResult{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return ports.UserWriteResult{User: user}, nil
}

// Update writes the profile fields only; the password hash is never changed
// here.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (ports.UserWriteResult, error) {
	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + userColumns
	updated := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, user.Email, user.FirstName, user.LastName, user.ID).Scan(
		&updated.ID, &updated.Email, &updated.PasswordHash, &updated.FirstName, &updated.LastName, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.UserWriteResult{}, nil
		}
		if v, ok := asUniqueViolation(err, "users"); ok {
			return ports.UserWriteResult{Violation: v}, nil
		}
		return ports.UserWriteResult{}, fmt.Errorf("failed to update user: %w", err)
	}
	return ports.UserWriteResult{User: updated}, nil
}
