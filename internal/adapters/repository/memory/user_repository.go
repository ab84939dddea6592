package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]domain.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (ports.UserWriteResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.UserWriteResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return ports.UserWriteResult{Violation: &ports.UniqueViolation{Field: "email"}}, nil
	}

	now := time.Now()
	stored := *user
	stored.ID = uuid.New()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID

	*user = stored
	return ports.UserWriteResult{User: user}, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (ports.UserWriteResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.UserWriteResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return ports.UserWriteResult{}, nil
	}
	if owner, taken := r.byEmail[user.Email]; taken && owner != user.ID {
		return ports.UserWriteResult{Violation: &ports.UniqueViolation{Field: "email"}}, nil
	}

	stored := *user
	// the hash and creation time are not profile fields
	stored.PasswordHash = current.PasswordHash
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now()

	delete(r.byEmail, current.Email)
	r.byEmail[stored.Email] = stored.ID
	r.byID[stored.ID] = stored

	out := stored
	return ports.UserWriteResult{User: &out}, nil
}

func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
