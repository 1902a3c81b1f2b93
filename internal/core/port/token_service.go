package port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
	"time"
)

// TokenServicePort определяет, что мы хотим делать с токенами.
type TokenServicePort interface {
	// Генерирует токен для пользователя со сроком жизни.
	GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)
	// Проверяет токен и возвращает claims, если он валиден.
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}
