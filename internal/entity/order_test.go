package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderItemDerivesSubtotal(t *testing.T) {
	it, err := NewOrderItem("p-1", "Pizza Margherita", 2, 150.0)
	require.NoError(t, err)
	assert.Equal(t, 300.0, it.Subtotal)
	assert.Equal(t, float64(it.Quantity)*it.UnitPrice, it.Subtotal)
}

func TestNewOrderItemValidation(t *testing.T) {
	cases := []struct {
		name      string
		productID string
		prodName  string
		qty       int
		price     float64
	}{
		{"empty product id", "  ", "Pizza", 1, 10},
		{"empty product name", "p-1", "   ", 1, 10},
		{"zero quantity", "p-1", "Pizza", 0, 10},
		{"negative quantity", "p-1", "Pizza", -3, 10},
		{"zero price", "p-1", "Pizza", 1, 0},
		{"negative price", "p-1", "Pizza", 1, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrderItem(tc.productID, tc.prodName, tc.qty, tc.price)
			assert.ErrorIs(t, err, ErrBusinessRule)
		})
	}
}

func TestNewOrderItemTrimsFields(t *testing.T) {
	it, err := NewOrderItem("  p-1 ", "  Tacos  ", 1, 80)
	require.NoError(t, err)
	assert.Equal(t, "p-1", it.ProductID)
	assert.Equal(t, "Tacos", it.ProductName)
}

func TestNewDeliveryAddressDefaultsCountry(t *testing.T) {
	a, err := NewDeliveryAddress("Av. Revolución 123", "CDMX", "CDMX", "06700", "", "Apt 4B")
	require.NoError(t, err)
	assert.Equal(t, DefaultCountry, a.Country)

	a, err = NewDeliveryAddress("Calle 1", "Monterrey", "NL", "64000", "Chile", "")
	require.NoError(t, err)
	assert.Equal(t, "Chile", a.Country)
}

func TestNewDeliveryAddressRejectsBlankFields(t *testing.T) {
	_, err := NewDeliveryAddress("", "CDMX", "CDMX", "06700", "", "")
	assert.ErrorIs(t, err, ErrBusinessRule)

	_, err = NewDeliveryAddress("Calle 1", "CDMX", "CDMX", "   ", "", "")
	assert.ErrorIs(t, err, ErrBusinessRule)
}

func sampleOrder() *Order {
	i1, _ := NewOrderItem("p-1", "Pizza", 2, 150.0)
	i2, _ := NewOrderItem("p-2", "Agua", 1, 80.0)
	now := time.Now().UTC()
	o := &Order{
		UserID:       "u-1",
		RestaurantID: "r-1",
		Items:        []OrderItem{i1, i2},
		Status:       StatusPending,
		DeliveryFee:  25.0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	o.TotalAmount = o.CalculateTotal()
	o.TaxAmount = o.TotalAmount * 0.16
	o.FinalAmount = o.CalculateFinalAmount()
	return o
}

func TestOrderAmountDerivation(t *testing.T) {
	o := sampleOrder()
	assert.Equal(t, 380.0, o.TotalAmount)
	assert.InDelta(t, 60.8, o.TaxAmount, 1e-9)
	assert.InDelta(t, 465.8, o.FinalAmount, 1e-9)
	assert.Equal(t, o.TotalAmount+o.DeliveryFee+o.TaxAmount, o.CalculateFinalAmount())
	require.NoError(t, o.Validate())
}

func TestOrderValidate(t *testing.T) {
	o := sampleOrder()
	o.UserID = " "
	assert.ErrorIs(t, o.Validate(), ErrBusinessRule)

	o = sampleOrder()
	o.Items = nil
	assert.ErrorIs(t, o.Validate(), ErrBusinessRule)

	o = sampleOrder()
	o.DeliveryFee = -1
	assert.ErrorIs(t, o.Validate(), ErrBusinessRule)

	o = sampleOrder()
	o.TotalAmount = 0
	assert.ErrorIs(t, o.Validate(), ErrBusinessRule)
}

func TestUpdateStatusToDeliveredStampsDeliveredAt(t *testing.T) {
	o := sampleOrder()
	require.Nil(t, o.DeliveredAt)

	o.UpdateStatus(StatusDelivered)

	assert.Equal(t, StatusDelivered, o.Status)
	require.NotNil(t, o.DeliveredAt)
	assert.False(t, o.DeliveredAt.Before(o.CreatedAt))
	assert.False(t, o.UpdatedAt.Before(o.CreatedAt))
}

func TestUpdateStatusOtherTransitionsLeaveDeliveredAtUnset(t *testing.T) {
	for _, st := range []OrderStatus{StatusConfirmed, StatusPreparing, StatusReady, StatusInDelivery, StatusCancelled} {
		o := sampleOrder()
		before := o.UpdatedAt
		o.UpdateStatus(st)
		assert.Equal(t, st, o.Status)
		assert.Nil(t, o.DeliveredAt, "status %s must not stamp delivered_at", st)
		assert.False(t, o.UpdatedAt.Before(before))
	}
}

func TestIsCancellable(t *testing.T) {
	expect := map[OrderStatus]bool{
		StatusPending:    true,
		StatusConfirmed:  true,
		StatusPreparing:  false,
		StatusReady:      false,
		StatusInDelivery: false,
		StatusDelivered:  false,
		StatusCancelled:  false,
	}
	for st, want := range expect {
		o := sampleOrder()
		o.Status = st
		assert.Equal(t, want, o.IsCancellable(), "status %s", st)
	}
}

func TestIsModifiable(t *testing.T) {
	for _, st := range []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusInDelivery, StatusDelivered, StatusCancelled} {
		o := sampleOrder()
		o.Status = st
		assert.Equal(t, st == StatusPending, o.IsModifiable(), "status %s", st)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("  In_Delivery ")
	require.NoError(t, err)
	assert.Equal(t, StatusInDelivery, st)

	_, err = ParseStatus("shipped")
	assert.True(t, errors.Is(err, ErrUnknownStatus))
}
