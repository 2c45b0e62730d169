package usecase

import (
	"time"

	domain "github.com/xChrisxY/orders-service/internal/entity"
)

// EventTypeOrderCreated doubles as the routing key on the topic exchange.
const EventTypeOrderCreated = "order.created"

type EventItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderCreatedEvent is an immutable snapshot of a freshly persisted order,
// consumed by the payment and notification services.
type OrderCreatedEvent struct {
	EventType    string      `json:"event_type"`
	OrderID      string      `json:"order_id"`
	UserID       string      `json:"user_id"`
	RestaurantID string      `json:"restaurant_id"`
	TotalAmount  float64     `json:"total_amount"`
	Items        []EventItem `json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewOrderCreatedEvent snapshots the order. Items are copied so later
// mutations of the aggregate cannot leak into the event.
func NewOrderCreatedEvent(o *domain.Order) OrderCreatedEvent {
	items := make([]EventItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, EventItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return OrderCreatedEvent{
		EventType:    EventTypeOrderCreated,
		OrderID:      o.ID,
		UserID:       o.UserID,
		RestaurantID: o.RestaurantID,
		TotalAmount:  o.TotalAmount,
		Items:        items,
		CreatedAt:    o.CreatedAt,
	}
}

// StatusChangedMsg arrives on Kafka from downstream services (payment,
// delivery) as SAGA feedback.
type StatusChangedMsg struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
