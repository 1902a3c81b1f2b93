package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"real-estate-marketplace/internal/adapters/memory"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

type fixture struct {
	store    *memory.Store
	listings *memory.ListingStorage
	likes    *memory.LikeRepository
}

func newFixture(t *testing.T, listings ...domain.Listing) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:    store,
		listings: memory.NewListingStorage(store),
		likes:    memory.NewLikeRepository(store),
	}
	for i := range listings {
		require.NoError(t, f.listings.Create(context.Background(), &listings[i]))
	}
	return f
}

func seed() []domain.Listing {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Listing{
		{
			ID: uuid.New(), Price: 999999, CreatedAt: base,
			Location:  domain.Location{County: "Nairobi", Suburb: "Ngara"},
			Features:  domain.Features{Bedrooms: intPtr(2)},
			Amenities: domain.Amenities{Internal: []string{"AC"}},
		},
		{
			ID: uuid.New(), Price: 5000000, CreatedAt: base.Add(time.Hour),
			Location:  domain.Location{City: "nairobi", Area: "NGARA estate"},
			Features:  domain.Features{Bedrooms: intPtr(4)},
			Amenities: domain.Amenities{Internal: []string{"AC", "Wi-Fi", "Heating"}},
		},
		{
			ID: uuid.New(), Price: 3000000, CreatedAt: base.Add(2 * time.Hour),
			Location: domain.Location{City: "Mombasa", Road: "Nairobi road"},
			Features: domain.Features{Bedrooms: intPtr(3)},
		},
	}
}

func find(t *testing.T, f *fixture, raw domain.RawFilters) *domain.PaginatedListings {
	t.Helper()
	result, err := usecase.NewFindListingsUseCase(f.listings).Execute(context.Background(), raw)
	require.NoError(t, err)
	return result
}

func ids(result *domain.PaginatedListings) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(result.Listings))
	for _, l := range result.Listings {
		out = append(out, l.ID)
	}
	return out
}

func TestFind_NoFiltersReturnsAllNewestFirst(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)

	result := find(t, f, domain.RawFilters{"unknownKey": "x", "minPrice": ""})

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, []uuid.UUID{listings[2].ID, listings[1].ID, listings[0].ID}, ids(result))
}

func TestFind_LocationTokens(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)

	result := find(t, f, domain.RawFilters{"location": "Nairobi Ngara"})
	assert.Equal(t, []uuid.UUID{listings[1].ID, listings[0].ID}, ids(result))
}

func TestFind_PriceBoundsInclusive(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)

	result := find(t, f, domain.RawFilters{"minPrice": "1000000", "maxPrice": "5000000"})
	assert.Equal(t, []uuid.UUID{listings[2].ID, listings[1].ID}, ids(result))
}

func TestFind_BedroomsAtLeast(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)

	result := find(t, f, domain.RawFilters{"bedrooms": "3"})
	assert.Equal(t, []uuid.UUID{listings[2].ID, listings[1].ID}, ids(result))
}

func TestFind_AmenitiesAll(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)

	result := find(t, f, domain.RawFilters{"amenitiesInternal": "AC,Wi-Fi"})
	assert.Equal(t, []uuid.UUID{listings[1].ID}, ids(result))
}

func TestFind_Pagination(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)

	result := find(t, f, domain.RawFilters{"limit": "1", "offset": "1"})
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, []uuid.UUID{listings[1].ID}, ids(result))
}

func TestToggleLike_Oscillates(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)
	ctx := context.Background()
	userID := uuid.New()
	toggle := usecase.NewToggleLikeUseCase(f.likes, nil)
	check := usecase.NewCheckLikeUseCase(f.likes)

	for _, want := range []bool{true, false, true} {
		liked, err := toggle.Execute(ctx, userID, listings[0].ID)
		require.NoError(t, err)
		assert.Equal(t, want, liked)

		stored, err := check.Execute(ctx, userID, listings[0].ID)
		require.NoError(t, err)
		assert.Equal(t, want, stored)
	}
}

// rendezvousLikes задерживает FindOne, пока оба вызова его не пройдут,
// чтобы оба toggle увидели "лайка нет" и пошли вставлять
type rendezvousLikes struct {
	*memory.LikeRepository
	arrived sync.WaitGroup
}

func (r *rendezvousLikes) FindOne(ctx context.Context, userID, listingID uuid.UUID) (*domain.Like, error) {
	like, err := r.LikeRepository.FindOne(ctx, userID, listingID)
	r.arrived.Done()
	r.arrived.Wait()
	return like, err
}

func TestToggleLike_ConcurrentFirstTogglesStoreOneLike(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)
	ctx := context.Background()
	userID, listingID := uuid.New(), listings[0].ID

	repo := &rendezvousLikes{LikeRepository: f.likes}
	repo.arrived.Add(2)
	toggle := usecase.NewToggleLikeUseCase(repo, nil)

	results := make([]bool, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = toggle.Execute(ctx, userID, listingID)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, []bool{true, true}, results)

	page, err := f.likes.FindLikedListings(ctx, userID, domain.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestLikeRepository_FindLikedListingsOrder(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)
	ctx := context.Background()
	userID := uuid.New()

	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, l := range listings {
		like := domain.NewLike(userID, l.ID)
		like.CreatedAt = at
		if i == 2 {
			like.CreatedAt = at.Add(time.Minute)
		}
		require.NoError(t, f.likes.InsertUnique(ctx, like))
	}

	// одинаковое время лайка упорядочивается по id объявления
	tied := []uuid.UUID{listings[0].ID, listings[1].ID}
	if tied[1].String() < tied[0].String() {
		tied[0], tied[1] = tied[1], tied[0]
	}
	want := []uuid.UUID{listings[2].ID, tied[0], tied[1]}

	for i := 0; i < 5; i++ {
		page, err := f.likes.FindLikedListings(ctx, userID, domain.Pagination{})
		require.NoError(t, err)
		assert.Equal(t, want, ids(page))
	}
}

func TestLikeRepository_InsertUniqueRejectsDuplicate(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, f.likes.InsertUnique(ctx, domain.NewLike(userID, listings[0].ID)))
	assert.ErrorIs(t, f.likes.InsertUnique(ctx, domain.NewLike(userID, listings[0].ID)), domain.ErrLikeExists)
	assert.ErrorIs(t, f.likes.InsertUnique(ctx, domain.NewLike(userID, uuid.New())), domain.ErrListingNotFound)
}

func TestListingStorage_DeleteCascades(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)
	ctx := context.Background()
	userID := uuid.New()
	bookings := memory.NewBookingRepository(f.store)

	require.NoError(t, f.likes.InsertUnique(ctx, domain.NewLike(userID, listings[0].ID)))
	booking := &domain.Booking{ID: uuid.New(), ListingID: listings[0].ID, UserID: userID, Status: domain.BookingPending}
	require.NoError(t, bookings.Create(ctx, booking))

	require.NoError(t, f.listings.Delete(ctx, listings[0].ID))

	like, err := f.likes.FindOne(ctx, userID, listings[0].ID)
	require.NoError(t, err)
	assert.Nil(t, like)
	_, err = bookings.FindByID(ctx, booking.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.ErrorIs(t, f.listings.Delete(ctx, listings[0].ID), domain.ErrListingNotFound)
}

func TestListingStorage_UpdateKeepsVisits(t *testing.T) {
	listings := seed()
	f := newFixture(t, listings...)
	ctx := context.Background()

	require.NoError(t, f.listings.AddVisits(ctx, listings[0].ID, 5))
	l, err := f.listings.FindByID(ctx, listings[0].ID)
	require.NoError(t, err)
	l.Visits = 0
	l.Price = 1
	require.NoError(t, f.listings.Update(ctx, l))

	l, err = f.listings.FindByID(ctx, listings[0].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, l.Visits)
	assert.Equal(t, 1.0, l.Price)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewStore())
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "a@b.c"}

	require.NoError(t, repo.Create(ctx, user))
	assert.ErrorIs(t, repo.Create(ctx, &domain.User{ID: uuid.New(), Email: "a@b.c"}), domain.ErrEmailInUse)

	found, err := repo.FindByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
