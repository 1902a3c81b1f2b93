package usecase

import (
	"context"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

type GetCurrentUserUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewGetCurrentUserUseCase(userRepo port.UserRepositoryPort) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: userRepo}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetCurrentUser",
		"user_id":  userID.String(),
	})
	ucLogger.Info("Use case started", nil)

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository failed to find user", err, nil)
		return nil, err
	}
	if user == nil {
		ucLogger.Warn("User from token no longer exists", nil)
		return nil, domain.ErrUserNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return user, nil
}
