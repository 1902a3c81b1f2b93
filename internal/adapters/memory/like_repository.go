package memory

import (
	"context"
	"sort"

	"real-estate-marketplace/internal/core/domain"

	"github.com/google/uuid"
)

type LikeRepository struct {
	store *Store
}

func NewLikeRepository(store *Store) *LikeRepository {
	return &LikeRepository{store: store}
}

func (r *LikeRepository) FindOne(ctx context.Context, userID, listingID uuid.UUID) (*domain.Like, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	like, ok := r.store.likes[likeKey{userID: userID, listingID: listingID}]
	if !ok {
		return nil, nil
	}
	return &like, nil
}

// InsertUnique - аналог уникального индекса (user_id, listing_id)
func (r *LikeRepository) InsertUnique(ctx context.Context, like *domain.Like) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.listings[like.ListingID]; !ok {
		return domain.ErrListingNotFound
	}
	key := likeKey{userID: like.UserID, listingID: like.ListingID}
	if _, exists := r.store.likes[key]; exists {
		return domain.ErrLikeExists
	}
	r.store.likes[key] = *like
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for key, like := range r.store.likes {
		if like.ID == id {
			delete(r.store.likes, key)
			break
		}
	}
	return nil
}

func (r *LikeRepository) FindLikedListings(ctx context.Context, userID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error) {
	r.store.mu.RLock()
	likes := make([]domain.Like, 0)
	for key, like := range r.store.likes {
		if key.userID == userID {
			likes = append(likes, like)
		}
	}
	// как ORDER BY lk.created_at DESC, l.id ASC
	sort.Slice(likes, func(i, j int) bool {
		if !likes[i].CreatedAt.Equal(likes[j].CreatedAt) {
			return likes[i].CreatedAt.After(likes[j].CreatedAt)
		}
		return likes[i].ListingID.String() < likes[j].ListingID.String()
	})

	listings := make([]domain.Listing, 0, len(likes))
	for _, like := range likes {
		if l, ok := r.store.listings[like.ListingID]; ok {
			listings = append(listings, cloneListing(l))
		}
	}
	r.store.mu.RUnlock()

	return paginate(listings, page), nil
}
