package usecase

import (
	"context"
	"errors"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

type ToggleLikeUseCase struct {
	likes     port.LikeRepositoryPort
	publisher port.EventPublisherPort
}

func NewToggleLikeUseCase(likes port.LikeRepositoryPort, publisher port.EventPublisherPort) *ToggleLikeUseCase {
	return &ToggleLikeUseCase{likes: likes, publisher: publisher}
}

// Execute снимает лайк, если он есть, иначе ставит его.
// Блокировок нет: от двойной вставки защищает уникальный индекс хранилища,
// а нарушение уникальности означает, что лайк уже стоит.
func (uc *ToggleLikeUseCase) Execute(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "ToggleLike",
		"user_id":    userID.String(),
		"listing_id": listingID.String(),
	})

	ucLogger.Info("Use case started", nil)

	existing, err := uc.likes.FindOne(ctx, userID, listingID)
	if err != nil {
		ucLogger.Error("Repository failed to find like", err, nil)
		return false, err
	}

	liked := true
	if existing != nil {
		if err := uc.likes.Delete(ctx, existing.ID); err != nil {
			ucLogger.Error("Repository failed to delete like", err, nil)
			return false, err
		}
		liked = false
	} else {
		err := uc.likes.InsertUnique(ctx, domain.NewLike(userID, listingID))
		switch {
		case errors.Is(err, domain.ErrLikeExists):
			// параллельный toggle успел вставить ту же пару
			ucLogger.Info("Concurrent like detected, treating as already liked", nil)
		case err != nil:
			ucLogger.Error("Repository failed to insert like", err, nil)
			return false, err
		}
	}

	publishEvent(ctx, uc.publisher, domain.Event{
		Type:      domain.EventLikeToggled,
		ListingID: listingID,
		ActorID:   userID,
		Payload:   map[string]interface{}{"liked": liked},
	}, ucLogger)

	ucLogger.Info("Use case finished successfully", port.Fields{"liked": liked})
	return liked, nil
}
