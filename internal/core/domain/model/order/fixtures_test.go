package order_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func address(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressFields{
		Name:       "John Doe",
		Phone:      "+91 98765 43211",
		Street:     "123 Main Street",
		City:       "Mumbai",
		State:      "Maharashtra",
		PostalCode: "400001",
		Country:    "India",
	})
	require.NoError(t, err)
	return a
}

func item(t *testing.T, price string, quantity int) order.LineItem {
	t.Helper()
	li, err := order.NewLineItem(kernel.NewUUID(), quantity, money(t, price), order.Customization{})
	require.NoError(t, err)
	return li
}

func params(t *testing.T, items ...order.LineItem) order.NewOrderParams {
	t.Helper()
	return order.NewOrderParams{
		ID:              kernel.NewUUID(),
		Number:          order.Number("ORD-000001"),
		CustomerID:      kernel.NewUUID(),
		Items:           items,
		ShippingAddress: address(t),
		Policy:          order.DefaultPricingPolicy(),
		At:              placedAt,
	}
}

func newOrder(t *testing.T, items ...order.LineItem) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []order.LineItem{item(t, "45000", 1)}
	}
	o, err := order.NewOrder(params(t, items...))
	require.NoError(t, err)
	return o
}

func requireHistoryMatchesStatus(t *testing.T, o *order.Order) {
	t.Helper()
	history := o.History()
	require.NotEmpty(t, history)
	require.Equal(t, order.Pending, history[0].Status())
	require.Equal(t, o.Status(), history[len(history)-1].Status())
}
