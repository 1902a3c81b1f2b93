package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like - отметка "избранное" пользователя для объявления. Пара (UserID, ListingID) уникальна.
type Like struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ListingID uuid.UUID
	CreatedAt time.Time
}

func NewLike(userID, listingID uuid.UUID) *Like {
	return &Like{
		ID:        uuid.New(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now().UTC(),
	}
}
