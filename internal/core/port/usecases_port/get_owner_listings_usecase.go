package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type GetOwnerListingsUseCasePort interface {
	Execute(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error)
}
