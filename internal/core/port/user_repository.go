package port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

// UserRepositoryPort - Find* возвращают (nil, nil), если пользователь не найден.
// Create возвращает domain.ErrEmailInUse при дубликате email.
type UserRepositoryPort interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
