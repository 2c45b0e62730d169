package usecase

import (
	"context"

	domain "github.com/xChrisxY/orders-service/internal/entity"
)

type OrderPage struct {
	Orders     []domain.Order
	Total      int64
	Page       int
	PerPage    int
	TotalPages int64
}

type GetOrdersByUser struct {
	repo OrderRepository
}

func NewGetOrdersByUser(repo OrderRepository) *GetOrdersByUser {
	return &GetOrdersByUser{repo: repo}
}

func (uc *GetOrdersByUser) Execute(ctx context.Context, userID string, page, perPage int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	skip := int64(page-1) * int64(perPage)

	orders, total, err := uc.repo.GetByUserID(ctx, userID, int64(perPage), skip)
	if err != nil {
		return nil, err
	}

	return &OrderPage{
		Orders:     orders,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

// GetOrdersByRestaurant serves the restaurant-facing listing with the same
// pagination contract.
type GetOrdersByRestaurant struct {
	repo OrderRepository
}

func NewGetOrdersByRestaurant(repo OrderRepository) *GetOrdersByRestaurant {
	return &GetOrdersByRestaurant{repo: repo}
}

func (uc *GetOrdersByRestaurant) Execute(ctx context.Context, restaurantID string, page, perPage int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	skip := int64(page-1) * int64(perPage)

	orders, total, err := uc.repo.GetByRestaurantID(ctx, restaurantID, int64(perPage), skip)
	if err != nil {
		return nil, err
	}

	return &OrderPage{
		Orders:     orders,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

func totalPages(total int64, perPage int) int64 {
	if total <= 0 {
		return 1
	}
	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}
	return pages
}
