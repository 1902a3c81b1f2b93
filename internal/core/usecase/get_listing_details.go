package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

type GetListingDetailsUseCase struct {
	storage port.ListingStoragePort
	cache   port.ListingCachePort
	visits  port.VisitRecorderPort
}

// cache и visits необязательны (nil - без кэша / без счетчика просмотров)
func NewGetListingDetailsUseCase(storage port.ListingStoragePort, cache port.ListingCachePort, visits port.VisitRecorderPort) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{storage: storage, cache: cache, visits: visits}
}

func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "GetListingDetails",
		"listing_id": id.String(),
	})

	ucLogger.Info("Use case started", nil)

	listing := uc.fromCache(ctx, id, ucLogger)
	if listing == nil {
		var err error
		listing, err = uc.storage.FindByID(ctx, id)
		if err != nil {
			ucLogger.Error("Storage returned an error", err, nil)
			return nil, err
		}
		if uc.cache != nil {
			if err := uc.cache.Set(ctx, listing); err != nil {
				ucLogger.Warn("Failed to put listing into cache", port.Fields{"error": err.Error()})
			}
		}
	}

	if uc.visits != nil {
		uc.visits.RecordVisit(ctx, id)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return listing, nil
}

// fromCache возвращает nil при промахе или недоступном кэше
func (uc *GetListingDetailsUseCase) fromCache(ctx context.Context, id uuid.UUID, logger port.LoggerPort) *domain.Listing {
	if uc.cache == nil {
		return nil
	}
	listing, err := uc.cache.Get(ctx, id)
	if err != nil {
		logger.Warn("Cache lookup failed", port.Fields{"error": err.Error()})
		return nil
	}
	if listing != nil {
		logger.Debug("Listing served from cache", nil)
	}
	return listing
}
