package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
)

type CreateListingUseCasePort interface {
	Execute(ctx context.Context, claims *domain.Claims, input domain.ListingInput) (*domain.Listing, error)
}
