package port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

// ListingStoragePort - контракт хранилища объявлений.
// FindByID возвращает domain.ErrListingNotFound, если объявления нет.
type ListingStoragePort interface {
	FindWithFilters(ctx context.Context, filters domain.ListingFilters, page domain.Pagination) (*domain.PaginatedListings, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddVisits(ctx context.Context, id uuid.UUID, delta int64) error
}
