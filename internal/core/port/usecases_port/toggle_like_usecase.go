package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type ToggleLikeUseCasePort interface {
	// Возвращает новое состояние: true - лайк поставлен, false - снят
	Execute(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
}
