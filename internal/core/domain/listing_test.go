package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListing(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	owner := uuid.New()

	l, err := NewListing(owner, ListingInput{
		Title:     strPtr(" Flat "),
		Price:     floatPtr(120000),
		OfferType: strPtr("Sale"),
		Location: &Location{
			City:      "Nairobi",
			Latitude:  floatPtr(-1.286389),
			Longitude: floatPtr(36.817223),
		},
		Amenities: &Amenities{Internal: []string{"AC", "AC", " ", "Wi-Fi"}},
	}, now)
	require.NoError(t, err)

	assert.Equal(t, owner, l.OwnerID)
	assert.Equal(t, "Flat", l.Title)
	assert.Equal(t, OfferSale, l.OfferType)
	assert.Equal(t, []string{"AC", "Wi-Fi"}, l.Amenities.Internal)
	assert.Len(t, l.Location.Geohash, 9)
	assert.True(t, l.ListingStatus)
	assert.Equal(t, now, l.CreatedAt)
	assert.Equal(t, now, l.UpdatedAt)
}

func TestNewListing_Invalid(t *testing.T) {
	cases := map[string]ListingInput{
		"missing price":     {OfferType: strPtr("sale")},
		"negative price":    {Price: floatPtr(-1), OfferType: strPtr("sale")},
		"unknown offertype": {Price: floatPtr(1), OfferType: strPtr("lease")},
		"half coordinates":  {Price: floatPtr(1), OfferType: strPtr("rent"), Location: &Location{Latitude: floatPtr(1)}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewListing(uuid.New(), in, time.Now())
			assert.True(t, errors.Is(err, ErrInvalidListing))
		})
	}
}

func TestListing_CanBeManagedBy(t *testing.T) {
	owner := uuid.New()
	l := &Listing{OwnerID: owner}

	assert.True(t, l.CanBeManagedBy(&Claims{UserID: owner, Role: RoleAgency}))
	assert.True(t, l.CanBeManagedBy(&Claims{UserID: uuid.New(), Role: RoleAdmin}))
	assert.False(t, l.CanBeManagedBy(&Claims{UserID: uuid.New(), Role: RoleAgency}))
	assert.False(t, l.CanBeManagedBy(nil))
}
