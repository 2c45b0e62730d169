package usecase

import (
	"context"
	"fmt"

	domain "github.com/xChrisxY/orders-service/internal/entity"
)

type GetOrder struct {
	repo OrderRepository
}

func NewGetOrder(repo OrderRepository) *GetOrder {
	return &GetOrder{repo: repo}
}

func (uc *GetOrder) Execute(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: id %s", domain.ErrNotFound, orderID)
	}
	return order, nil
}
