package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xChrisxY/orders-service/internal/usecase"
)

type recordingClient struct {
	keys     []string
	messages []any
	err      error
}

func (c *recordingClient) Publish(ctx context.Context, routingKey string, message any) error {
	if c.err != nil {
		return c.err
	}
	c.keys = append(c.keys, routingKey)
	c.messages = append(c.messages, message)
	return nil
}

func sampleEvent() usecase.OrderCreatedEvent {
	return usecase.OrderCreatedEvent{
		EventType:    usecase.EventTypeOrderCreated,
		OrderID:      "ord-1",
		UserID:       "u-1",
		RestaurantID: "r-1",
		TotalAmount:  380.0,
		Items: []usecase.EventItem{
			{ProductID: "p-1", ProductName: "Pizza", Quantity: 2, UnitPrice: 150, Subtotal: 300},
		},
		CreatedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestEventPublisherUsesTypeTagAsRoutingKey(t *testing.T) {
	client := &recordingClient{}
	p := NewEventPublisher(client, discard())

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.Len(t, client.keys, 1)
	assert.Equal(t, "order.created", client.keys[0])
	assert.Equal(t, sampleEvent(), client.messages[0])
}

func TestEventPublisherReRaisesClientErrors(t *testing.T) {
	brokerErr := errors.New("broker unreachable")
	p := NewEventPublisher(&recordingClient{err: brokerErr}, discard())

	err := p.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, brokerErr)
}
