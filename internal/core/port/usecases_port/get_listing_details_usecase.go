package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type GetListingDetailsUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
}
