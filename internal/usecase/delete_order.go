package usecase

import (
	"context"
	"fmt"

	domain "github.com/xChrisxY/orders-service/internal/entity"
)

type DeleteOrder struct {
	repo OrderRepository
}

func NewDeleteOrder(repo OrderRepository) *DeleteOrder {
	return &DeleteOrder{repo: repo}
}

func (uc *DeleteOrder) Execute(ctx context.Context, orderID string) error {
	deleted, err := uc.repo.Delete(ctx, orderID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: id %s", domain.ErrNotFound, orderID)
	}
	return nil
}
