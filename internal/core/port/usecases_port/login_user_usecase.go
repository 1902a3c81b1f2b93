package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
)

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.AuthResult, error)
}
