package usecase

import (
	"context"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
)

// publishEvent отправляет событие "по возможности": сбой брокера не отменяет уже выполненную операцию
func publishEvent(ctx context.Context, publisher port.EventPublisherPort, event domain.Event, logger port.LoggerPort) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish domain event", port.Fields{
			"event_type": event.Type,
			"error":      err.Error(),
		})
	}
}
