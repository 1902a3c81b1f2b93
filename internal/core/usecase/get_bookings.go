package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

type GetUserBookingsUseCase struct {
	bookings port.BookingRepositoryPort
}

func NewGetUserBookingsUseCase(bookings port.BookingRepositoryPort) *GetUserBookingsUseCase {
	return &GetUserBookingsUseCase{bookings: bookings}
}

func (uc *GetUserBookingsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetUserBookings",
		"user_id":  userID.String(),
	})
	ucLogger.Info("Use case started", nil)

	bookings, err := uc.bookings.FindByUser(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(bookings)})
	return bookings, nil
}

type GetOwnerBookingsUseCase struct {
	bookings port.BookingRepositoryPort
}

func NewGetOwnerBookingsUseCase(bookings port.BookingRepositoryPort) *GetOwnerBookingsUseCase {
	return &GetOwnerBookingsUseCase{bookings: bookings}
}

func (uc *GetOwnerBookingsUseCase) Execute(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetOwnerBookings",
		"owner_id": ownerID.String(),
	})
	ucLogger.Info("Use case started", nil)

	bookings, err := uc.bookings.FindByOwner(ctx, ownerID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(bookings)})
	return bookings, nil
}
