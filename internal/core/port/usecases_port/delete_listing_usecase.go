package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type DeleteListingUseCasePort interface {
	Execute(ctx context.Context, claims *domain.Claims, id uuid.UUID) error
}
