package port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

// ListingCachePort - кэш карточек объявлений. Get возвращает (nil, nil) при промахе.
type ListingCachePort interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Set(ctx context.Context, listing *domain.Listing) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}
