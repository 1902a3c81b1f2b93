package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

type DeleteListingUseCase struct {
	storage   port.ListingStoragePort
	cache     port.ListingCachePort
	publisher port.EventPublisherPort
}

func NewDeleteListingUseCase(storage port.ListingStoragePort, cache port.ListingCachePort, publisher port.EventPublisherPort) *DeleteListingUseCase {
	return &DeleteListingUseCase{storage: storage, cache: cache, publisher: publisher}
}

// Execute удаляет объявление; лайки и заявки удаляются хранилищем каскадно
func (uc *DeleteListingUseCase) Execute(ctx context.Context, claims *domain.Claims, id uuid.UUID) error {
	if claims == nil {
		return domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"listing_id": id.String(),
		"user_id":    claims.UserID.String(),
	})

	ucLogger.Info("Use case started", nil)

	listing, err := uc.storage.FindByID(ctx, id)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return err
	}
	if !listing.CanBeManagedBy(claims) {
		ucLogger.Warn("User is not the owner of the listing", nil)
		return domain.ErrForbidden
	}

	if err := uc.storage.Delete(ctx, id); err != nil {
		ucLogger.Error("Storage failed to delete listing", err, nil)
		return err
	}

	invalidateListing(ctx, uc.cache, id, ucLogger)

	publishEvent(ctx, uc.publisher, domain.Event{
		Type:      domain.EventListingDeleted,
		ListingID: id,
		ActorID:   claims.UserID,
	}, ucLogger)

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
