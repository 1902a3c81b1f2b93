package port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

// LikeRepositoryPort - контракт хранилища лайков. Уникальность пары (user, listing)
// обеспечивает само хранилище: InsertUnique возвращает domain.ErrLikeExists.
// FindOne возвращает (nil, nil), если лайка нет.
type LikeRepositoryPort interface {
	FindOne(ctx context.Context, userID, listingID uuid.UUID) (*domain.Like, error)
	InsertUnique(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindLikedListings(ctx context.Context, userID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error)
}
