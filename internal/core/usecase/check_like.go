package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

type CheckLikeUseCase struct {
	likes port.LikeRepositoryPort
}

func NewCheckLikeUseCase(likes port.LikeRepositoryPort) *CheckLikeUseCase {
	return &CheckLikeUseCase{likes: likes}
}

func (uc *CheckLikeUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	// анонимный вызов - это отдельный сигнал, а не "не лайкнуто"
	if userID == uuid.Nil {
		return false, domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "CheckLike",
		"user_id":    userID.String(),
		"listing_id": listingID.String(),
	})

	ucLogger.Debug("Use case started", nil)

	like, err := uc.likes.FindOne(ctx, userID, listingID)
	if err != nil {
		ucLogger.Error("Repository failed to find like", err, nil)
		return false, err
	}

	ucLogger.Debug("Use case finished successfully", nil)
	return like != nil, nil
}
