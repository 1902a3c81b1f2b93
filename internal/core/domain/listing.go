package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

type OfferType string

const (
	OfferSale OfferType = "sale"
	OfferRent OfferType = "rent"
)

// ParseOfferType нормализует регистр и проверяет допустимое значение
func ParseOfferType(s string) (OfferType, bool) {
	switch OfferType(strings.ToLower(strings.TrimSpace(s))) {
	case OfferSale:
		return OfferSale, true
	case OfferRent:
		return OfferRent, true
	}
	return "", false
}

const geohashPrecision = 9

// Location - структурированный адрес объявления
type Location struct {
	County    string
	City      string
	Suburb    string
	Area      string
	Road      string
	Latitude  *float64
	Longitude *float64
	Geohash   string
}

// Fields возвращает адресные поля, по которым ищет фильтр location
func (l Location) Fields() []string {
	return []string{l.County, l.City, l.Suburb, l.Area, l.Road}
}

type Features struct {
	Bedrooms  *int
	Bathrooms *int
	Rooms     *int
	Size      *float64
}

type Amenities struct {
	Internal []string
	External []string
	Nearby   []string
}

type Listing struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Description   string
	Location      Location
	Price         float64
	PropertyType  string
	OfferType     OfferType
	Features      Features
	Amenities     Amenities
	Images        []string
	Featured      bool
	ListingStatus bool
	Visits        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListingInput - данные для создания/обновления объявления.
// nil означает "поле не передано" (важно для частичного обновления).
type ListingInput struct {
	Title         *string
	Description   *string
	Location      *Location
	Price         *float64
	PropertyType  *string
	OfferType     *string
	Features      *Features
	Amenities     *Amenities
	Images        []string
	Featured      *bool
	ListingStatus *bool
}

// NewListing собирает новое объявление из входных данных и проверяет инварианты.
func NewListing(ownerID uuid.UUID, in ListingInput, now time.Time) (*Listing, error) {
	if in.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrInvalidListing)
	}
	if in.OfferType == nil {
		return nil, fmt.Errorf("%w: offertype is required", ErrInvalidListing)
	}

	l := &Listing{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		ListingStatus: true,
		Images:        []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := l.Apply(in); err != nil {
		return nil, err
	}
	l.UpdatedAt = now
	return l, nil
}

// Apply применяет переданные поля к объявлению.
func (l *Listing) Apply(in ListingInput) error {
	if in.Price != nil {
		if *in.Price < 0 {
			return fmt.Errorf("%w: price must be non-negative", ErrInvalidListing)
		}
		l.Price = *in.Price
	}
	if in.OfferType != nil {
		ot, ok := ParseOfferType(*in.OfferType)
		if !ok {
			return fmt.Errorf("%w: offertype must be one of sale, rent", ErrInvalidListing)
		}
		l.OfferType = ot
	}
	if in.Title != nil {
		l.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.PropertyType != nil {
		l.PropertyType = strings.TrimSpace(*in.PropertyType)
	}
	if in.Location != nil {
		loc := *in.Location
		if (loc.Latitude == nil) != (loc.Longitude == nil) {
			return fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidListing)
		}
		loc.Geohash = ""
		if loc.Latitude != nil {
			loc.Geohash = geohash.EncodeWithPrecision(*loc.Latitude, *loc.Longitude, geohashPrecision)
		}
		l.Location = loc
	}
	if in.Features != nil {
		l.Features = *in.Features
	}
	if in.Amenities != nil {
		l.Amenities = Amenities{
			Internal: DedupeTags(in.Amenities.Internal),
			External: DedupeTags(in.Amenities.External),
			Nearby:   DedupeTags(in.Amenities.Nearby),
		}
	}
	if in.Images != nil {
		l.Images = append([]string{}, in.Images...)
	}
	if in.Featured != nil {
		l.Featured = *in.Featured
	}
	if in.ListingStatus != nil {
		l.ListingStatus = *in.ListingStatus
	}
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// DedupeTags убирает пустые и повторяющиеся теги, сохраняя порядок.
func DedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// CanBeManagedBy - владелец или администратор
func (l *Listing) CanBeManagedBy(claims *Claims) bool {
	if claims == nil {
		return false
	}
	return claims.Role == RoleAdmin || l.OwnerID == claims.UserID
}

// PaginatedListings - страница результатов и общее число совпадений до пагинации
type PaginatedListings struct {
	Listings []Listing
	Total    int
}
