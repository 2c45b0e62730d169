package queue

import (
	"context"
	"log/slog"

	"github.com/xChrisxY/orders-service/internal/usecase"
)

// MessageClient is what the publisher needs from the broker client.
type MessageClient interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// EventPublisher hands domain events to the broker. The event type tag is
// used verbatim as the routing key.
type EventPublisher struct {
	client MessageClient
	log    *slog.Logger
}

func NewEventPublisher(client MessageClient, log *slog.Logger) *EventPublisher {
	return &EventPublisher{client: client, log: log}
}

func (p *EventPublisher) Publish(ctx context.Context, event usecase.OrderCreatedEvent) error {
	if err := p.client.Publish(ctx, event.EventType, event); err != nil {
		p.log.Error("failed to publish event",
			"event_type", event.EventType, "order_id", event.OrderID, "error", err)
		return err
	}
	return nil
}

var _ usecase.EventSink = (*EventPublisher)(nil)
