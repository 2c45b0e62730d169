package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusReady      OrderStatus = "ready"
	StatusInDelivery OrderStatus = "in_delivery"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrBusinessRule  = errors.New("business rule violation")
	ErrUnknownStatus = errors.New("unknown order status")
)

// BusinessError wraps a cause into ErrBusinessRule so callers can dispatch
// with errors.Is while keeping the underlying cause text visible.
func BusinessError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBusinessRule, fmt.Sprintf(format, args...))
}

// ParseStatus maps a raw string onto the closed status set.
func ParseStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusInDelivery, StatusDelivered, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// OrderItem is an immutable line item. Subtotal is derived once in
// NewOrderItem and never recomputed afterwards.
type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}

func NewOrderItem(productID, productName string, quantity int, unitPrice float64) (OrderItem, error) {
	productID = strings.TrimSpace(productID)
	productName = strings.TrimSpace(productName)
	if productID == "" {
		return OrderItem{}, BusinessError("product id cannot be empty")
	}
	if productName == "" {
		return OrderItem{}, BusinessError("product name cannot be empty")
	}
	if quantity <= 0 {
		return OrderItem{}, BusinessError("quantity must be positive, got %d", quantity)
	}
	if unitPrice <= 0 {
		return OrderItem{}, BusinessError("unit price must be positive, got %v", unitPrice)
	}
	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    float64(quantity) * unitPrice,
	}, nil
}

const DefaultCountry = "Mexico"

type DeliveryAddress struct {
	Street         string
	City           string
	State          string
	PostalCode     string
	Country        string
	AdditionalInfo string
}

func NewDeliveryAddress(street, city, state, postalCode, country, additionalInfo string) (DeliveryAddress, error) {
	a := DeliveryAddress{
		Street:         strings.TrimSpace(street),
		City:           strings.TrimSpace(city),
		State:          strings.TrimSpace(state),
		PostalCode:     strings.TrimSpace(postalCode),
		Country:        strings.TrimSpace(country),
		AdditionalInfo: strings.TrimSpace(additionalInfo),
	}
	if a.Street == "" || a.City == "" || a.State == "" || a.PostalCode == "" {
		return DeliveryAddress{}, BusinessError("street, city, state and postal code cannot be empty")
	}
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	return a, nil
}

// Order is the aggregate root. All consistency-relevant mutations flow
// through UpdateStatus; amounts are derived at construction time by the
// create-order use case.
type Order struct {
	ID                    string
	UserID                string
	RestaurantID          string
	Items                 []OrderItem
	DeliveryAddress       DeliveryAddress
	Status                OrderStatus
	TotalAmount           float64
	DeliveryFee           float64
	TaxAmount             float64
	FinalAmount           float64
	Notes                 string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	EstimatedDeliveryTime *time.Time
	DeliveredAt           *time.Time
}

func (o *Order) Validate() error {
	if strings.TrimSpace(o.UserID) == "" {
		return BusinessError("user id cannot be empty")
	}
	if strings.TrimSpace(o.RestaurantID) == "" {
		return BusinessError("restaurant id cannot be empty")
	}
	if len(o.Items) == 0 {
		return BusinessError("order must have at least one item")
	}
	if o.TotalAmount <= 0 {
		return BusinessError("total amount must be positive, got %v", o.TotalAmount)
	}
	if o.DeliveryFee < 0 {
		return BusinessError("delivery fee cannot be negative, got %v", o.DeliveryFee)
	}
	if o.FinalAmount <= 0 {
		return BusinessError("final amount must be positive, got %v", o.FinalAmount)
	}
	return nil
}

// CalculateTotal sums the item subtotals. Pure.
func (o *Order) CalculateTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Subtotal
	}
	return total
}

// CalculateFinalAmount is total + delivery fee + tax. Pure.
func (o *Order) CalculateFinalAmount() float64 {
	return o.TotalAmount + o.DeliveryFee + o.TaxAmount
}

// UpdateStatus sets the new status and refreshes UpdatedAt. Transitioning
// into delivered also stamps DeliveredAt. Source-status legality is not
// checked here; the closed enum is only enforced at the boundary by
// ParseStatus.
func (o *Order) UpdateStatus(newStatus OrderStatus) {
	now := time.Now().UTC()
	o.Status = newStatus
	o.UpdatedAt = now
	if newStatus == StatusDelivered {
		o.DeliveredAt = &now
	}
}

func (o *Order) IsCancellable() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

func (o *Order) IsModifiable() bool {
	return o.Status == StatusPending
}
