package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingDeclined  BookingStatus = "declined"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	st := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case BookingPending, BookingAccepted, BookingDeclined, BookingCancelled:
		return st, true
	}
	return "", false
}

// Booking - заявка на просмотр объекта
type Booking struct {
	ID          uuid.UUID
	ListingID   uuid.UUID
	UserID      uuid.UUID
	OwnerID     uuid.UUID
	ViewingDate time.Time
	Message     string
	Status      BookingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBooking проверяет заявку на объявление listing от пользователя userID
func NewBooking(listing *Listing, userID uuid.UUID, viewingDate time.Time, message string, now time.Time) (*Booking, error) {
	if !listing.ListingStatus {
		return nil, fmt.Errorf("%w: listing is not available", ErrInvalidBooking)
	}
	if listing.OwnerID == userID {
		return nil, fmt.Errorf("%w: cannot book own listing", ErrInvalidBooking)
	}
	if !viewingDate.After(now) {
		return nil, fmt.Errorf("%w: viewing date must be in the future", ErrInvalidBooking)
	}

	return &Booking{
		ID:          uuid.New(),
		ListingID:   listing.ID,
		UserID:      userID,
		OwnerID:     listing.OwnerID,
		ViewingDate: viewingDate.UTC(),
		Message:     strings.TrimSpace(message),
		Status:      BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Transition меняет статус от имени actorID.
// Владелец принимает/отклоняет, автор заявки может только отменить. Переход возможен лишь из pending.
func (b *Booking) Transition(actorID uuid.UUID, to BookingStatus, now time.Time) error {
	if b.Status != BookingPending {
		return fmt.Errorf("%w: booking is already %s", ErrInvalidBookingStatus, b.Status)
	}

	switch to {
	case BookingAccepted, BookingDeclined:
		if actorID != b.OwnerID {
			return ErrForbidden
		}
	case BookingCancelled:
		if actorID != b.UserID {
			return ErrForbidden
		}
	default:
		return fmt.Errorf("%w: cannot move to %s", ErrInvalidBookingStatus, to)
	}

	b.Status = to
	b.UpdatedAt = now
	return nil
}
