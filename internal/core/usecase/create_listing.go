package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
	"time"
)

type CreateListingUseCase struct {
	storage   port.ListingStoragePort
	publisher port.EventPublisherPort
}

func NewCreateListingUseCase(storage port.ListingStoragePort, publisher port.EventPublisherPort) *CreateListingUseCase {
	return &CreateListingUseCase{storage: storage, publisher: publisher}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, claims *domain.Claims, input domain.ListingInput) (*domain.Listing, error) {
	if claims == nil {
		return nil, domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateListing",
		"owner_id": claims.UserID.String(),
	})

	ucLogger.Info("Use case started", nil)

	if !claims.HasRole(domain.RoleAgency, domain.RoleAdmin) {
		ucLogger.Warn("User role is not allowed to create listings", port.Fields{"role": claims.Role})
		return nil, domain.ErrForbidden
	}

	listing, err := domain.NewListing(claims.UserID, input, time.Now().UTC())
	if err != nil {
		ucLogger.Warn("Listing validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.storage.Create(ctx, listing); err != nil {
		ucLogger.Error("Storage failed to create listing", err, nil)
		return nil, err
	}

	publishEvent(ctx, uc.publisher, domain.Event{
		Type:      domain.EventListingCreated,
		ListingID: listing.ID,
		ActorID:   claims.UserID,
	}, ucLogger)

	ucLogger.Info("Use case finished successfully", port.Fields{"listing_id": listing.ID.String()})
	return listing, nil
}
