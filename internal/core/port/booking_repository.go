package port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type BookingRepositoryPort interface {
	Create(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)
}
