package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

type GetLikedListingsUseCase struct {
	likes port.LikeRepositoryPort
}

func NewGetLikedListingsUseCase(likes port.LikeRepositoryPort) *GetLikedListingsUseCase {
	return &GetLikedListingsUseCase{likes: likes}
}

func (uc *GetLikedListingsUseCase) Execute(ctx context.Context, userID uuid.UUID, page domain.Pagination) (*domain.PaginatedListings, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetLikedListings",
		"user_id":  userID.String(),
		"limit":    page.Limit,
		"offset":   page.Offset,
	})

	ucLogger.Info("Use case started", nil)

	result, err := uc.likes.FindLikedListings(ctx, userID, page)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total_found": result.Total})
	return result, nil
}
