package rest

import (
	"time"

	"real-estate-marketplace/internal/core/domain"
)

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

type LocationDTO struct {
	County    string   `json:"county,omitempty"`
	City      string   `json:"city,omitempty"`
	Suburb    string   `json:"suburb,omitempty"`
	Area      string   `json:"area,omitempty"`
	Road      string   `json:"road,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Geohash   string   `json:"geohash,omitempty"`
}

type FeaturesDTO struct {
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	Rooms     *int     `json:"rooms,omitempty"`
	Size      *float64 `json:"size,omitempty"`
}

type AmenitiesDTO struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
	Nearby   []string `json:"nearby"`
}

// ListingResponse - объявление в том виде, в каком его ждет клиент
type ListingResponse struct {
	ID            string       `json:"id"`
	OwnerID       string       `json:"ownerId"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Location      LocationDTO  `json:"location"`
	Price         float64      `json:"price"`
	PropertyType  string       `json:"propertytype"`
	OfferType     string       `json:"offertype"`
	Features      FeaturesDTO  `json:"features"`
	Amenities     AmenitiesDTO `json:"amenities"`
	Images        []string     `json:"images"`
	Featured      bool         `json:"featured"`
	ListingStatus bool         `json:"listingstatus"`
	Visits        int64        `json:"visits"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// FindListingsResponse - ответ поиска
type FindListingsResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Total    int               `json:"total"`
	Listings []ListingResponse `json:"listings"`
}

// FailureResponse - ответ поиска при ошибке хранилища
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type PaginatedListingsResponse struct {
	Data   []ListingResponse `json:"data"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// ListingRequest - тело POST/PUT /listings. Отсутствующее поле не меняется.
type ListingRequest struct {
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	Location      *LocationDTO  `json:"location"`
	Price         *float64      `json:"price"`
	PropertyType  *string       `json:"propertytype"`
	OfferType     *string       `json:"offertype"`
	Features      *FeaturesDTO  `json:"features"`
	Amenities     *AmenitiesDTO `json:"amenities"`
	Images        []string      `json:"images"`
	Featured      *bool         `json:"featured"`
	ListingStatus *bool         `json:"listingstatus"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}

type BookingRequest struct {
	ViewingDate time.Time `json:"viewingDate"`
	Message     string    `json:"message"`
}

type BookingStatusRequest struct {
	Status string `json:"status"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	ListingID   string    `json:"listingId"`
	UserID      string    `json:"userId"`
	OwnerID     string    `json:"ownerId"`
	ViewingDate time.Time `json:"viewingDate"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toListingResponse(l domain.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID.String(),
		OwnerID:     l.OwnerID.String(),
		Title:       l.Title,
		Description: l.Description,
		Location: LocationDTO{
			County:    l.Location.County,
			City:      l.Location.City,
			Suburb:    l.Location.Suburb,
			Area:      l.Location.Area,
			Road:      l.Location.Road,
			Latitude:  l.Location.Latitude,
			Longitude: l.Location.Longitude,
			Geohash:   l.Location.Geohash,
		},
		Price:        l.Price,
		PropertyType: l.PropertyType,
		OfferType:    string(l.OfferType),
		Features: FeaturesDTO{
			Bedrooms:  l.Features.Bedrooms,
			Bathrooms: l.Features.Bathrooms,
			Rooms:     l.Features.Rooms,
			Size:      l.Features.Size,
		},
		Amenities: AmenitiesDTO{
			Internal: emptyIfNil(l.Amenities.Internal),
			External: emptyIfNil(l.Amenities.External),
			Nearby:   emptyIfNil(l.Amenities.Nearby),
		},
		Images:        emptyIfNil(l.Images),
		Featured:      l.Featured,
		ListingStatus: l.ListingStatus,
		Visits:        l.Visits,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toListingResponses(listings []domain.Listing) []ListingResponse {
	out := make([]ListingResponse, len(listings))
	for i, l := range listings {
		out[i] = toListingResponse(l)
	}
	return out
}

func (req ListingRequest) toInput() domain.ListingInput {
	in := domain.ListingInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		PropertyType:  req.PropertyType,
		OfferType:     req.OfferType,
		Images:        req.Images,
		Featured:      req.Featured,
		ListingStatus: req.ListingStatus,
	}
	if req.Location != nil {
		in.Location = &domain.Location{
			County:    req.Location.County,
			City:      req.Location.City,
			Suburb:    req.Location.Suburb,
			Area:      req.Location.Area,
			Road:      req.Location.Road,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}
	if req.Features != nil {
		in.Features = &domain.Features{
			Bedrooms:  req.Features.Bedrooms,
			Bathrooms: req.Features.Bathrooms,
			Rooms:     req.Features.Rooms,
			Size:      req.Features.Size,
		}
	}
	if req.Amenities != nil {
		in.Amenities = &domain.Amenities{
			Internal: req.Amenities.Internal,
			External: req.Amenities.External,
			Nearby:   req.Amenities.Nearby,
		}
	}
	return in
}

func toBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		ListingID:   b.ListingID.String(),
		UserID:      b.UserID.String(),
		OwnerID:     b.OwnerID.String(),
		ViewingDate: b.ViewingDate,
		Message:     b.Message,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResponse(b)
	}
	return out
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
