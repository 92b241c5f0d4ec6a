package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/pkg/auth"
)

// UserRepository implements auth.UserRepository in memory.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]auth.User
	byEmail map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: map[uuid.UUID]auth.User{}, byEmail: map[string]uuid.UUID{}}
}

func (r *UserRepository) Create(_ context.Context, user auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return auth.ErrUserAlreadyExists
	}
	r.byEmail[user.Email] = user.ID
	r.byID[user.ID] = user
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}
