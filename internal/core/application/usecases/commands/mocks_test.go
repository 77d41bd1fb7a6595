package commands_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOutbox struct{ mock.Mock }

func (m *MockOutbox) Enqueue(ctx context.Context, entry ports.OutboxEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockOutbox) ClaimPending(ctx context.Context, limit int) ([]ports.OutboxEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxEntry), args.Error(1)
}

func (m *MockOutbox) MarkDispatched(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type MockSequence struct{ mock.Mock }

func (m *MockSequence) Next(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) NotificationOutbox() ports.NotificationOutbox {
	args := m.Called()
	return args.Get(0).(ports.NotificationOutbox)
}

func (m *MockUoW) OrderNumberSequence() ports.OrderNumberSequence {
	args := m.Called()
	return args.Get(0).(ports.OrderNumberSequence)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) Products(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]ports.Product), args.Error(1)
}

type MockResolver struct{ mock.Mock }

func (m *MockResolver) Resolve(ctx context.Context, o *order.Order) (ports.OrderView, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(ports.OrderView), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyOrderCreated(ctx context.Context, view ports.OrderView) {
	m.Called(ctx, view)
}

func (m *MockNotifier) NotifyStatusChanged(ctx context.Context, view ports.OrderView, status order.Status, note string) {
	m.Called(ctx, view, status, note)
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func shippingAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.AddressFields{
		Name: "John Doe", Phone: "+91 98765 43211", Street: "123 Main Street",
		City: "Mumbai", State: "Maharashtra", PostalCode: "400001", Country: "India",
	})
	require.NoError(t, err)
	return a
}

func existingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), 1, money(t, "45000"), order.Customization{})
	require.NoError(t, err)
	o, err := order.NewOrder(order.NewOrderParams{
		ID:              kernel.NewUUID(),
		Number:          "ORD-000010",
		CustomerID:      kernel.NewUUID(),
		Items:           []order.LineItem{item},
		ShippingAddress: shippingAddress(t),
		Policy:          order.DefaultPricingPolicy(),
		At:              time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	return o
}
