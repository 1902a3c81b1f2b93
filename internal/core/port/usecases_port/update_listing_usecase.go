package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type UpdateListingUseCasePort interface {
	Execute(ctx context.Context, claims *domain.Claims, id uuid.UUID, input domain.ListingInput) (*domain.Listing, error)
}
