package port

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
)

// EventPublisherPort - отправка доменных событий во внешний брокер
type EventPublisherPort interface {
	Publish(ctx context.Context, event domain.Event) error
}
