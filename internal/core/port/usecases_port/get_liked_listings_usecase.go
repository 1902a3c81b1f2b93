package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type GetLikedListingsUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error)
}
