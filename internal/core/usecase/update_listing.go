package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

type UpdateListingUseCase struct {
	storage   port.ListingStoragePort
	cache     port.ListingCachePort
	publisher port.EventPublisherPort
}

func NewUpdateListingUseCase(storage port.ListingStoragePort, cache port.ListingCachePort, publisher port.EventPublisherPort) *UpdateListingUseCase {
	return &UpdateListingUseCase{storage: storage, cache: cache, publisher: publisher}
}

func (uc *UpdateListingUseCase) Execute(ctx context.Context, claims *domain.Claims, id uuid.UUID, input domain.ListingInput) (*domain.Listing, error) {
	if claims == nil {
		return nil, domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateListing",
		"listing_id": id.String(),
		"user_id":    claims.UserID.String(),
	})

	ucLogger.Info("Use case started", nil)

	listing, err := uc.storage.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	if !listing.CanBeManagedBy(claims) {
		ucLogger.Warn("User is not the owner of the listing", nil)
		return nil, domain.ErrForbidden
	}

	if err := listing.Apply(input); err != nil {
		ucLogger.Warn("Listing validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.storage.Update(ctx, listing); err != nil {
		ucLogger.Error("Storage failed to update listing", err, nil)
		return nil, err
	}

	invalidateListing(ctx, uc.cache, id, ucLogger)

	publishEvent(ctx, uc.publisher, domain.Event{
		Type:      domain.EventListingUpdated,
		ListingID: id,
		ActorID:   claims.UserID,
	}, ucLogger)

	ucLogger.Info("Use case finished successfully", nil)
	return listing, nil
}

func invalidateListing(ctx context.Context, cache port.ListingCachePort, id uuid.UUID, logger port.LoggerPort) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, id); err != nil {
		logger.Warn("Failed to invalidate listing cache", port.Fields{"error": err.Error()})
	}
}
