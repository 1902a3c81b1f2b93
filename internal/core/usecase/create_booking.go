package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
	"time"

	"github.com/google/uuid"
)

type CreateBookingUseCase struct {
	listings  port.ListingStoragePort
	bookings  port.BookingRepositoryPort
	publisher port.EventPublisherPort
	now       func() time.Time
}

func NewCreateBookingUseCase(listings port.ListingStoragePort, bookings port.BookingRepositoryPort, publisher port.EventPublisherPort) *CreateBookingUseCase {
	return &CreateBookingUseCase{
		listings:  listings,
		bookings:  bookings,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *CreateBookingUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID, viewingDate time.Time, message string) (*domain.Booking, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "CreateBooking",
		"user_id":    userID.String(),
		"listing_id": listingID.String(),
	})

	ucLogger.Info("Use case started", nil)

	listing, err := uc.listings.FindByID(ctx, listingID)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	booking, err := domain.NewBooking(listing, userID, viewingDate, message, uc.now())
	if err != nil {
		ucLogger.Warn("Booking rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.bookings.Create(ctx, booking); err != nil {
		ucLogger.Error("Repository failed to create booking", err, nil)
		return nil, err
	}

	publishEvent(ctx, uc.publisher, domain.Event{
		Type:      domain.EventBookingCreated,
		ListingID: listingID,
		ActorID:   userID,
		Payload: map[string]interface{}{
			"booking_id":   booking.ID.String(),
			"owner_id":     booking.OwnerID.String(),
			"viewing_date": booking.ViewingDate,
		},
	}, ucLogger)

	ucLogger.Info("Use case finished successfully", port.Fields{"booking_id": booking.ID.String()})
	return booking, nil
}
