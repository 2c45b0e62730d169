package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/xChrisxY/orders-service/internal/entity"
	"github.com/xChrisxY/orders-service/internal/usecase"
)

type fakeUpdater struct {
	calls []domain.OrderStatus
	ids   []string
	err   error
}

func (f *fakeUpdater) Execute(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.ids = append(f.ids, orderID)
	f.calls = append(f.calls, status)
	return &domain.Order{ID: orderID, Status: status}, nil
}

func TestHandleAppliesParsedStatus(t *testing.T) {
	upd := &fakeUpdater{}
	h := NewOrderStatusChangedHandler(upd)

	err := h.Handle(context.Background(), usecase.StatusChangedMsg{OrderID: "ord-1", Status: "CONFIRMED"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ord-1"}, upd.ids)
	assert.Equal(t, []domain.OrderStatus{domain.StatusConfirmed}, upd.calls)
}

func TestHandleRejectsUnknownStatus(t *testing.T) {
	upd := &fakeUpdater{}
	h := NewOrderStatusChangedHandler(upd)

	err := h.Handle(context.Background(), usecase.StatusChangedMsg{OrderID: "ord-1", Status: "SUCCESS"})
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
	assert.Empty(t, upd.calls)
}

func TestHandlePropagatesNotFound(t *testing.T) {
	h := NewOrderStatusChangedHandler(&fakeUpdater{err: domain.ErrNotFound})
	err := h.Handle(context.Background(), usecase.StatusChangedMsg{OrderID: "missing", Status: "delivered"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
