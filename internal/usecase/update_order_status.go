package usecase

import (
	"context"
	"fmt"

	domain "github.com/xChrisxY/orders-service/internal/entity"
)

type UpdateOrderStatus struct {
	repo  OrderRepository
	cache StatusCache // optional
}

func NewUpdateOrderStatus(repo OrderRepository, cache StatusCache) *UpdateOrderStatus {
	return &UpdateOrderStatus{repo: repo, cache: cache}
}

func (uc *UpdateOrderStatus) Execute(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: id %s", domain.ErrNotFound, orderID)
	}

	order.UpdateStatus(newStatus)

	updated, err := uc.repo.Update(ctx, order)
	if err != nil {
		return nil, domain.BusinessError("failed to update order %s: %v", orderID, err)
	}

	// Cache best-effort.
	if uc.cache != nil {
		_ = uc.cache.SetStatus(ctx, updated.ID, string(updated.Status))
	}
	return updated, nil
}
