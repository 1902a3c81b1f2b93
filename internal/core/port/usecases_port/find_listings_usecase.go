package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
)

type FindListingsUseCasePort interface {
	Execute(ctx context.Context, raw domain.RawFilters) (*domain.PaginatedListings, error)
}
