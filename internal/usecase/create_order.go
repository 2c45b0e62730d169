package usecase

import (
	"context"
	"math/rand"
	"time"

	domain "github.com/xChrisxY/orders-service/internal/entity"
)

const DefaultTaxRate = 0.16

type CreateOrderItemInput struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
}

type DeliveryAddressInput struct {
	Street         string
	City           string
	State          string
	PostalCode     string
	Country        string
	AdditionalInfo string
}

type CreateOrderInput struct {
	UserID          string
	RestaurantID    string
	Items           []CreateOrderItemInput
	DeliveryAddress DeliveryAddressInput
	Notes           string
	DeliveryFee     float64
	TaxRate         float64
}

type CreateOrder struct {
	repo OrderRepository
	sink EventSink // optional

	// Injected for deterministic tests.
	now        func() time.Time
	etaMinutes func() int
}

// NewCreateOrder builds the use case. sink may be nil when no event fan-out
// is configured.
func NewCreateOrder(repo OrderRepository, sink EventSink) *CreateOrder {
	return &CreateOrder{
		repo:       repo,
		sink:       sink,
		now:        func() time.Time { return time.Now().UTC() },
		etaMinutes: func() int { return 30 + rand.Intn(16) },
	}
}

func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	order, err := uc.build(in)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.Create(ctx, order)
	if err != nil {
		return nil, domain.BusinessError("failed to create order: %v", err)
	}

	// Announce creation for SAGA choreography. Persistence is already
	// committed at this point; a publish failure surfaces without rollback.
	if uc.sink != nil {
		if err := uc.sink.Publish(ctx, NewOrderCreatedEvent(created)); err != nil {
			return nil, err
		}
	}

	return created, nil
}

func (uc *CreateOrder) build(in CreateOrderInput) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		item, err := domain.NewOrderItem(it.ProductID, it.ProductName, it.Quantity, it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	addr, err := domain.NewDeliveryAddress(
		in.DeliveryAddress.Street,
		in.DeliveryAddress.City,
		in.DeliveryAddress.State,
		in.DeliveryAddress.PostalCode,
		in.DeliveryAddress.Country,
		in.DeliveryAddress.AdditionalInfo,
	)
	if err != nil {
		return nil, err
	}

	taxRate := in.TaxRate
	if taxRate < 0 || taxRate > 1 {
		return nil, domain.BusinessError("tax rate must be within [0,1], got %v", taxRate)
	}

	now := uc.now()
	eta := now.Add(time.Duration(uc.etaMinutes()) * time.Minute)

	order := &domain.Order{
		UserID:                in.UserID,
		RestaurantID:          in.RestaurantID,
		Items:                 items,
		DeliveryAddress:       addr,
		Status:                domain.StatusPending,
		DeliveryFee:           in.DeliveryFee,
		Notes:                 in.Notes,
		CreatedAt:             now,
		UpdatedAt:             now,
		EstimatedDeliveryTime: &eta,
	}
	order.TotalAmount = order.CalculateTotal()
	order.TaxAmount = order.TotalAmount * taxRate
	order.FinalAmount = order.CalculateFinalAmount()

	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}
