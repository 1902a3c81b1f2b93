package usecase

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockListingStorage struct{ mock.Mock }

func (m *MockListingStorage) FindWithFilters(ctx context.Context, filters domain.ListingFilters, page domain.Pagination) (*domain.PaginatedListings, error) {
	args := m.Called(ctx, filters, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedListings), args.Error(1)
}
func (m *MockListingStorage) FindByOwner(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error) {
	args := m.Called(ctx, ownerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedListings), args.Error(1)
}
func (m *MockListingStorage) FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingStorage) Create(ctx context.Context, listing *domain.Listing) error {
	return m.Called(ctx, listing).Error(0)
}
func (m *MockListingStorage) Update(ctx context.Context, listing *domain.Listing) error {
	return m.Called(ctx, listing).Error(0)
}
func (m *MockListingStorage) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockListingStorage) AddVisits(ctx context.Context, id uuid.UUID, delta int64) error {
	return m.Called(ctx, id, delta).Error(0)
}

type MockLikeRepository struct{ mock.Mock }

func (m *MockLikeRepository) FindOne(ctx context.Context, userID, listingID uuid.UUID) (*domain.Like, error) {
	args := m.Called(ctx, userID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Like), args.Error(1)
}
func (m *MockLikeRepository) InsertUnique(ctx context.Context, like *domain.Like) error {
	return m.Called(ctx, like).Error(0)
}
func (m *MockLikeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockLikeRepository) FindLikedListings(ctx context.Context, userID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedListings), args.Error(1)
}

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}
func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepository) UpdateStatus(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}
func (m *MockBookingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenService struct{ mock.Mock }

func (m *MockTokenService) GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	args := m.Called(ctx, user, ttl)
	return args.String(0), args.Error(1)
}
func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claims), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type MockListingCache struct{ mock.Mock }

func (m *MockListingCache) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingCache) Set(ctx context.Context, listing *domain.Listing) error {
	return m.Called(ctx, listing).Error(0)
}
func (m *MockListingCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockVisitRecorder struct{ mock.Mock }

func (m *MockVisitRecorder) RecordVisit(ctx context.Context, listingID uuid.UUID) {
	m.Called(ctx, listingID)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e domain.Event) bool { return e.Type == eventType })
}
