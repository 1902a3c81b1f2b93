package usecase

import (
	"context"
	"fmt"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
	"strings"
	"time"
)

type RegisterUserUseCase struct {
	userRepo       port.UserRepositoryPort
	tokenSvc       port.TokenServicePort
	accessTokenTTL time.Duration
}

func NewRegisterUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, accessTokenTTL time.Duration) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:       userRepo,
		tokenSvc:       tokenSvc,
		accessTokenTTL: accessTokenTTL,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, email, password, name, role string) (*domain.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RegisterUser",
		"email":    email,
		"role":     role,
	})

	ucLogger.Info("Use case started: attempting to register user", nil)

	existingUser, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed while checking for existing email", err, nil)
		return nil, fmt.Errorf("internal server error: %w", err)
	}
	if existingUser != nil {
		ucLogger.Warn("Registration failed: email already in use", nil)
		return nil, domain.ErrEmailInUse
	}

	// хеширование пароля происходит внутри NewUser
	user, err := domain.NewUser(email, password, name, role)
	if err != nil {
		ucLogger.Warn("Failed to create new user domain object", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})

	// уникальный индекс по email ловит параллельную регистрацию
	if err := uc.userRepo.Create(ctx, user); err != nil {
		ucLogger.Error("Repository failed to create user", err, nil)
		return nil, err
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful registration", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished: user registered successfully", nil)
	return &domain.AuthResult{User: user, Token: token}, nil
}
