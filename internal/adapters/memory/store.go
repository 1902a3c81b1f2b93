// Package memory - хранилище в памяти процесса (STORAGE_DRIVER=memory).
// Используется для локального запуска и тестов; ограничения уникальности
// соблюдаются так же, как индексы в PostgreSQL.
package memory

import (
	"sort"
	"sync"

	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type likeKey struct {
	userID    uuid.UUID
	listingID uuid.UUID
}

// Store - общие данные для всех репозиториев, чтобы каскадное удаление работало как в БД
type Store struct {
	mu       sync.RWMutex
	listings map[uuid.UUID]domain.Listing
	likes    map[likeKey]domain.Like
	bookings map[uuid.UUID]domain.Booking
	users    map[uuid.UUID]domain.User
	emails   map[string]uuid.UUID
}

func NewStore() *Store {
	return &Store{
		listings: make(map[uuid.UUID]domain.Listing),
		likes:    make(map[likeKey]domain.Like),
		bookings: make(map[uuid.UUID]domain.Booking),
		users:    make(map[uuid.UUID]domain.User),
		emails:   make(map[string]uuid.UUID),
	}
}

// sortNewestFirst - createdAt по убыванию, при равенстве по id
func sortNewestFirst(listings []domain.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if !listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		}
		return listings[i].ID.String() < listings[j].ID.String()
	})
}

func paginate(listings []domain.Listing, page domain.Pagination) *domain.PaginatedListings {
	start, end := page.Window(len(listings))
	out := make([]domain.Listing, end-start)
	copy(out, listings[start:end])
	return &domain.PaginatedListings{Listings: out, Total: len(listings)}
}

// cloneListing копирует срезы, чтобы вызывающий код не менял данные хранилища
func cloneListing(l domain.Listing) domain.Listing {
	l.Amenities.Internal = append([]string(nil), l.Amenities.Internal...)
	l.Amenities.External = append([]string(nil), l.Amenities.External...)
	l.Amenities.Nearby = append([]string(nil), l.Amenities.Nearby...)
	l.Images = append([]string(nil), l.Images...)
	return l
}
