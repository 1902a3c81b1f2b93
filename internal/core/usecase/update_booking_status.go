package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
	"time"

	"github.com/google/uuid"
)

type UpdateBookingStatusUseCase struct {
	bookings  port.BookingRepositoryPort
	publisher port.EventPublisherPort
}

func NewUpdateBookingStatusUseCase(bookings port.BookingRepositoryPort, publisher port.EventPublisherPort) *UpdateBookingStatusUseCase {
	return &UpdateBookingStatusUseCase{bookings: bookings, publisher: publisher}
}

func (uc *UpdateBookingStatusUseCase) Execute(ctx context.Context, actorID, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	if actorID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateBookingStatus",
		"booking_id": bookingID.String(),
		"actor_id":   actorID.String(),
		"status":     string(status),
	})

	ucLogger.Info("Use case started", nil)

	booking, err := uc.bookings.FindByID(ctx, bookingID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	previous := booking.Status
	if err := booking.Transition(actorID, status, time.Now().UTC()); err != nil {
		ucLogger.Warn("Status transition rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.bookings.UpdateStatus(ctx, booking); err != nil {
		ucLogger.Error("Repository failed to update booking", err, nil)
		return nil, err
	}

	publishEvent(ctx, uc.publisher, domain.Event{
		Type:      domain.EventBookingStatusChanged,
		ListingID: booking.ListingID,
		ActorID:   actorID,
		Payload: map[string]interface{}{
			"booking_id": booking.ID.String(),
			"from":       string(previous),
			"to":         string(booking.Status),
		},
	}, ucLogger)

	ucLogger.Info("Use case finished successfully", nil)
	return booking, nil
}
