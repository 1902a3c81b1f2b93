package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

type CheckLikeUseCasePort interface {
	Execute(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
}
