package usecases_port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
)

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, email, password, name, role string) (*domain.AuthResult, error)
}
