package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

type GetOwnerListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewGetOwnerListingsUseCase(storage port.ListingStoragePort) *GetOwnerListingsUseCase {
	return &GetOwnerListingsUseCase{storage: storage}
}

func (uc *GetOwnerListingsUseCase) Execute(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetOwnerListings",
		"owner_id": ownerID.String(),
		"limit":    page.Limit,
		"offset":   page.Offset,
	})

	ucLogger.Info("Use case started", nil)

	result, err := uc.storage.FindByOwner(ctx, ownerID, page)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": result.Total})
	return result, nil
}
