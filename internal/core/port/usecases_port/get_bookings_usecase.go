package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

// GetUserBookingsUseCasePort - заявки, отправленные пользователем
type GetUserBookingsUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
}

// GetOwnerBookingsUseCasePort - входящие заявки на объявления владельца
type GetOwnerBookingsUseCasePort interface {
	Execute(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)
}
