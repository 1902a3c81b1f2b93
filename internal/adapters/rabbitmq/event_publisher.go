package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// MessagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// EventDTO - тело сообщения в обменнике событий
type EventDTO struct {
	EventID    uuid.UUID              `json:"event_id"`
	Type       string                 `json:"type"`
	ListingID  uuid.UUID              `json:"listing_id"`
	ActorID    uuid.UUID              `json:"actor_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// EventPublisherAdapter публикует доменные события; routing key совпадает с типом события
type EventPublisherAdapter struct {
	producer MessagePublisher
}

func NewEventPublisherAdapter(producer MessagePublisher) (*EventPublisherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &EventPublisherAdapter{producer: producer}, nil
}

func (a *EventPublisherAdapter) Publish(ctx context.Context, event domain.Event) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "EventPublisherAdapter",
		"routing_key": event.Type,
		"listing_id":  event.ListingID.String(),
	})

	dto := EventDTO{
		EventID:    uuid.New(),
		Type:       event.Type,
		ListingID:  event.ListingID,
		ActorID:    event.ActorID,
		OccurredAt: time.Now().UTC(),
		Payload:    event.Payload,
	}
	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to encode event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    dto.EventID.String(),
		Timestamp:    dto.OccurredAt,
		Type:         event.Type,
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, event.Type, msg); err != nil {
		adapterLogger.Error("Failed to publish event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s: %w", event.Type, err)
	}

	adapterLogger.Debug("Event published", port.Fields{"event_id": dto.EventID.String()})
	return nil
}

// NoopEventPublisher используется, когда RabbitMQ выключен в конфиге
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, event domain.Event) error { return nil }
