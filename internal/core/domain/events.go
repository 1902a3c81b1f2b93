package domain

import "github.com/google/uuid"

// Типы доменных событий, публикуемых в брокер
const (
	EventListingCreated       = "listing.created"
	EventListingUpdated       = "listing.updated"
	EventListingDeleted       = "listing.deleted"
	EventLikeToggled          = "like.toggled"
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// Event - уведомление об изменении в домене
type Event struct {
	Type      string
	ListingID uuid.UUID
	ActorID   uuid.UUID
	Payload   map[string]interface{}
}
