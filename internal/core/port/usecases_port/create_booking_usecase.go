package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

type CreateBookingUseCasePort interface {
	Execute(ctx context.Context, userID, listingID uuid.UUID, viewingDate time.Time, message string) (*domain.Booking, error)
}
