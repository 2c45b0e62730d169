package usecase

import (
	"context"

	domain "github.com/xChrisxY/orders-service/internal/entity"
)

// OrderRepository is the durable-store collaborator. Paged reads return the
// page plus the total number of matching documents so callers can paginate.
// Update fails when no matching record exists; UpdateStatus and Delete report
// whether a record was touched.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID string, limit, skip int64) ([]domain.Order, int64, error)
	GetByRestaurantID(ctx context.Context, restaurantID string, limit, skip int64) ([]domain.Order, int64, error)
	GetByStatus(ctx context.Context, status domain.OrderStatus, limit, skip int64) ([]domain.Order, int64, error)
	Update(ctx context.Context, o *domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// EventSink receives domain events for asynchronous fan-out to other
// services. Errors are surfaced, not swallowed.
type EventSink interface {
	Publish(ctx context.Context, event OrderCreatedEvent) error
}

// StatusCache is a best-effort read cache for order status; failures are
// ignored by callers.
type StatusCache interface {
	SetStatus(ctx context.Context, orderID string, status string) error
	GetStatus(ctx context.Context, orderID string) (string, error)
}
