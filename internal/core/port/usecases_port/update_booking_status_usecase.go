package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type UpdateBookingStatusUseCasePort interface {
	Execute(ctx context.Context, actorID, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
}
