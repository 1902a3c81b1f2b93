package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	now := time.Now().UTC()
	listing := &Listing{ID: uuid.New(), OwnerID: uuid.New(), ListingStatus: true}
	user := uuid.New()

	b, err := NewBooking(listing, user, now.Add(24*time.Hour), " hi ", now)
	require.NoError(t, err)
	assert.Equal(t, BookingPending, b.Status)
	assert.Equal(t, listing.OwnerID, b.OwnerID)
	assert.Equal(t, "hi", b.Message)

	_, err = NewBooking(listing, listing.OwnerID, now.Add(time.Hour), "", now)
	assert.True(t, errors.Is(err, ErrInvalidBooking))

	_, err = NewBooking(listing, user, now.Add(-time.Hour), "", now)
	assert.True(t, errors.Is(err, ErrInvalidBooking))

	listing.ListingStatus = false
	_, err = NewBooking(listing, user, now.Add(time.Hour), "", now)
	assert.True(t, errors.Is(err, ErrInvalidBooking))
}

func TestBooking_Transition(t *testing.T) {
	owner, requester := uuid.New(), uuid.New()
	newBooking := func() *Booking {
		return &Booking{OwnerID: owner, UserID: requester, Status: BookingPending}
	}
	now := time.Now()

	b := newBooking()
	assert.ErrorIs(t, b.Transition(requester, BookingAccepted, now), ErrForbidden)
	require.NoError(t, b.Transition(owner, BookingAccepted, now))
	assert.Equal(t, BookingAccepted, b.Status)
	assert.ErrorIs(t, b.Transition(owner, BookingDeclined, now), ErrInvalidBookingStatus)

	b = newBooking()
	assert.ErrorIs(t, b.Transition(owner, BookingCancelled, now), ErrForbidden)
	require.NoError(t, b.Transition(requester, BookingCancelled, now))

	b = newBooking()
	assert.ErrorIs(t, b.Transition(owner, BookingPending, now), ErrInvalidBookingStatus)
}
