package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
)

type FindListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewFindListingsUseCase(storage port.ListingStoragePort) *FindListingsUseCase {
	return &FindListingsUseCase{storage: storage}
}

// Execute разбирает сырые параметры в фильтры и пагинацию и выполняет поиск.
// Результат отсортирован по дате создания, новые первыми.
func (uc *FindListingsUseCase) Execute(ctx context.Context, raw domain.RawFilters) (*domain.PaginatedListings, error) {
	filters := domain.ParseListingFilters(raw)
	page := domain.ParsePagination(raw)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindListings",
		"filters":  filters,
		"limit":    page.Limit,
		"offset":   page.Offset,
	})

	ucLogger.Info("Use case started", nil)

	result, err := uc.storage.FindWithFilters(ctx, filters, page)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.Total,
		"items_on_page": len(result.Listings),
	})

	return result, nil
}
