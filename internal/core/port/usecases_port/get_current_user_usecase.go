package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type GetCurrentUserUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
