package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	domain "github.com/xChrisxY/orders-service/internal/entity"
)

// fakeRepo is an in-memory OrderRepository shared by the use-case tests.
type fakeRepo struct {
	seq    int
	orders map[string]domain.Order

	createErr error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: make(map[string]domain.Order)}
}

func (r *fakeRepo) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	cp := *o
	cp.ID = "ord-" + strconv.Itoa(r.seq)
	r.orders[cp.ID] = cp
	return &cp, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := o
	return &cp, nil
}

func (r *fakeRepo) page(match func(domain.Order) bool, limit, skip int64) ([]domain.Order, int64, error) {
	var all []domain.Order
	for i := 1; i <= r.seq; i++ {
		if o, ok := r.orders["ord-"+strconv.Itoa(i)]; ok && match(o) {
			all = append(all, o)
		}
	}
	total := int64(len(all))
	if skip >= total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (r *fakeRepo) GetByUserID(ctx context.Context, userID string, limit, skip int64) ([]domain.Order, int64, error) {
	return r.page(func(o domain.Order) bool { return o.UserID == userID }, limit, skip)
}

func (r *fakeRepo) GetByRestaurantID(ctx context.Context, restaurantID string, limit, skip int64) ([]domain.Order, int64, error) {
	return r.page(func(o domain.Order) bool { return o.RestaurantID == restaurantID }, limit, skip)
}

func (r *fakeRepo) GetByStatus(ctx context.Context, status domain.OrderStatus, limit, skip int64) ([]domain.Order, int64, error) {
	return r.page(func(o domain.Order) bool { return o.Status == status }, limit, skip)
}

func (r *fakeRepo) Update(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.orders[o.ID]; !ok {
		return nil, fmt.Errorf("no matching record for id %s", o.ID)
	}
	r.orders[o.ID] = *o
	cp := *o
	return &cp, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (bool, error) {
	o, ok := r.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return true, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

var _ OrderRepository = (*fakeRepo)(nil)

// fakeSink records published events and can fail on demand.
type fakeSink struct {
	events []OrderCreatedEvent
	err    error
}

func (s *fakeSink) Publish(ctx context.Context, ev OrderCreatedEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

// fakeCache records the last status written per order.
type fakeCache struct {
	statuses map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{statuses: make(map[string]string)} }

func (c *fakeCache) SetStatus(ctx context.Context, orderID, status string) error {
	c.statuses[orderID] = status
	return nil
}

func (c *fakeCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	st, ok := c.statuses[orderID]
	if !ok {
		return "", errors.New("cache miss")
	}
	return st, nil
}

func validCreateInput() CreateOrderInput {
	return CreateOrderInput{
		UserID:       "u-1",
		RestaurantID: "r-1",
		Items: []CreateOrderItemInput{
			{ProductID: "p-1", ProductName: "Pizza Margherita", Quantity: 2, UnitPrice: 150.0},
			{ProductID: "p-2", ProductName: "Agua Mineral", Quantity: 1, UnitPrice: 80.0},
		},
		DeliveryAddress: DeliveryAddressInput{
			Street:     "Av. Revolución 123",
			City:       "Ciudad de México",
			State:      "CDMX",
			PostalCode: "06700",
		},
		DeliveryFee: 25.0,
		TaxRate:     DefaultTaxRate,
	}
}
