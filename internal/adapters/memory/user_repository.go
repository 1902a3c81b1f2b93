package memory

import (
	"context"

	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.store.emails[user.Email]; taken {
		return domain.ErrEmailInUse
	}
	r.store.users[user.ID] = *user
	r.store.emails[user.Email] = user.ID
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.emails[email]
	if !ok {
		return nil, nil
	}
	u := r.store.users[id]
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
