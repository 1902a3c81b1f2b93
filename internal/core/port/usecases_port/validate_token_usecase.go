package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
)

type ValidateTokenUseCasePort interface {
	Execute(ctx context.Context, tokenString string) (*domain.Claims, error)
}
