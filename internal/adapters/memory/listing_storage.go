package memory

import (
	"context"

	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type ListingStorage struct {
	store *Store
}

func NewListingStorage(store *Store) *ListingStorage {
	return &ListingStorage{store: store}
}

func (s *ListingStorage) FindWithFilters(ctx context.Context, filters domain.ListingFilters, page domain.Pagination) (*domain.PaginatedListings, error) {
	return s.find(ctx, filters.Matches, page)
}

func (s *ListingStorage) FindByOwner(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error) {
	return s.find(ctx, func(l domain.Listing) bool { return l.OwnerID == ownerID }, page)
}

func (s *ListingStorage) find(ctx context.Context, match func(domain.Listing) bool, page domain.Pagination) (*domain.PaginatedListings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	matched := make([]domain.Listing, 0)
	for _, l := range s.store.listings {
		if match(l) {
			matched = append(matched, cloneListing(l))
		}
	}
	s.store.mu.RUnlock()

	sortNewestFirst(matched)
	return paginate(matched, page), nil
}

func (s *ListingStorage) FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	l, ok := s.store.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	l = cloneListing(l)
	return &l, nil
}

func (s *ListingStorage) Create(ctx context.Context, listing *domain.Listing) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.listings[listing.ID] = cloneListing(*listing)
	return nil
}

func (s *ListingStorage) Update(ctx context.Context, listing *domain.Listing) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	current, ok := s.store.listings[listing.ID]
	if !ok {
		return domain.ErrListingNotFound
	}
	updated := cloneListing(*listing)
	updated.Visits = current.Visits
	s.store.listings[listing.ID] = updated
	return nil
}

// Delete каскадно удаляет лайки и заявки объявления
func (s *ListingStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(s.store.listings, id)
	for key := range s.store.likes {
		if key.listingID == id {
			delete(s.store.likes, key)
		}
	}
	for bid, b := range s.store.bookings {
		if b.ListingID == id {
			delete(s.store.bookings, bid)
		}
	}
	return nil
}

func (s *ListingStorage) AddVisits(ctx context.Context, id uuid.UUID, delta int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	l, ok := s.store.listings[id]
	if !ok {
		return domain.ErrListingNotFound
	}
	l.Visits += delta
	s.store.listings[id] = l
	return nil
}
