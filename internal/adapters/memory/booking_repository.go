package memory

import (
	"context"
	"sort"

	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type BookingRepository struct {
	store *Store
}

func NewBookingRepository(store *Store) *BookingRepository {
	return &BookingRepository{store: store}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.listings[booking.ListingID]; !ok {
		return domain.ErrListingNotFound
	}
	r.store.bookings[booking.ID] = *booking
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

// UpdateStatus применяет изменение, только если сохраненная заявка еще pending
func (r *BookingRepository) UpdateStatus(ctx context.Context, booking *domain.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.bookings[booking.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if current.Status != domain.BookingPending {
		return domain.ErrInvalidBookingStatus
	}
	current.Status = booking.Status
	current.UpdatedAt = booking.UpdatedAt
	r.store.bookings[booking.ID] = current
	return nil
}

func (r *BookingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool { return b.UserID == userID }), nil
}

func (r *BookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool { return b.OwnerID == ownerID }), nil
}

func (r *BookingRepository) filter(match func(domain.Booking) bool) []domain.Booking {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Booking, 0)
	for _, b := range r.store.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
