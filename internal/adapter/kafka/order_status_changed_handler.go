package kafka

import (
	"context"

	domain "github.com/xChrisxY/orders-service/internal/entity"
	"github.com/xChrisxY/orders-service/internal/usecase"
)

// StatusUpdater is the slice of the update-status use case this handler
// drives.
type StatusUpdater interface {
	Execute(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

// OrderStatusChangedHandler applies SAGA feedback from downstream services
// (payment confirmed, delivery progress) to the order aggregate.
type OrderStatusChangedHandler struct {
	update StatusUpdater
}

func NewOrderStatusChangedHandler(update StatusUpdater) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{update: update}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.StatusChangedMsg) error {
	status, err := domain.ParseStatus(ev.Status)
	if err != nil {
		return err
	}
	_, err = h.update.Execute(ctx, ev.OrderID, status)
	return err
}
