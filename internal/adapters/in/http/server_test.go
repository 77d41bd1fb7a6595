package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrder struct{ mock.Mock }

func (m *MockCreateOrder) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockChangeStatus struct{ mock.Mock }

func (m *MockChangeStatus) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockUpdateShipping struct{ mock.Mock }

func (m *MockUpdateShipping) Handle(ctx context.Context, cmd commands.UpdateShippingDetailsCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockGetOrder struct{ mock.Mock }

func (m *MockGetOrder) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockListOrders struct{ mock.Mock }

func (m *MockListOrders) Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ListOrdersQueryResponse), args.Error(1)
}

type fixture struct {
	create   *MockCreateOrder
	status   *MockChangeStatus
	shipping *MockUpdateShipping
	get      *MockGetOrder
	list     *MockListOrders
	handler  http.Handler
}

func newFixture(t *testing.T, check httpin.HealthCheck) *fixture {
	t.Helper()

	f := &fixture{
		create:   new(MockCreateOrder),
		status:   new(MockChangeStatus),
		shipping: new(MockUpdateShipping),
		get:      new(MockGetOrder),
		list:     new(MockListOrders),
	}
	reg := prometheus.NewRegistry()
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:           f.create,
		ChangeOrderStatus:     f.status,
		UpdateShippingDetails: f.shipping,
		GetOrder:              f.get,
		ListOrders:            f.list,
	}, metrics.New(reg), slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.handler = httpin.NewRouter(server, metrics.New(prometheus.NewRegistry()), metrics.Handler(reg), check)
	return f
}

func (f *fixture) do(method, target, body string, user *kernel.UUID, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set(httpin.HeaderUserID, user.String())
	}
	if role != "" {
		req.Header.Set(httpin.HeaderUserRole, role)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func sampleOrder(t *testing.T, customer kernel.UUID) *order.Order {
	t.Helper()

	price, err := kernel.MoneyFromString("45000")
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), 1, price, order.Customization{Size: "7"})
	require.NoError(t, err)
	shipping, err := kernel.NewAddress(kernel.AddressFields{
		Name: "John Doe", Phone: "+91 98765 43211", Street: "123 Main Street",
		City: "Mumbai", State: "Maharashtra", PostalCode: "400001", Country: "India",
	})
	require.NoError(t, err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:              kernel.NewUUID(),
		Number:          "ORD-000042",
		CustomerID:      customer,
		Items:           []order.LineItem{item},
		ShippingAddress: shipping,
		Policy:          order.DefaultPricingPolicy(),
		At:              time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return o
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

const newOrderBody = `{
	"items": [{"product_id": "%s", "quantity": 1, "price": 45000, "customization": {"size": "7"}}],
	"shipping_address": {"name": "John Doe", "phone": "+91 98765 43211", "street": "123 Main Street",
		"city": "Mumbai", "state": "Maharashtra", "postal_code": "400001", "country": "India"},
	"subtotal": 45000
}`

func TestServer_CreateOrder(t *testing.T) {
	f := newFixture(t, nil)
	customer, product := kernel.NewUUID(), kernel.NewUUID()
	created := sampleOrder(t, customer)

	f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.CustomerID().IsEqual(customer) &&
			len(cmd.Items()) == 1 &&
			cmd.Items()[0].ProductID().IsEqual(product) &&
			cmd.ClaimedSubtotal() != nil
	})).Return(created, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", strings.Replace(newOrderBody, "%s", product.String(), 1), &customer, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[httpin.Order](t, rec)
	assert.Equal(t, "ORD-000042", body.OrderNumber)
	assert.Equal(t, "pending", body.Status)
	assert.Equal(t, "53100", body.Total.String())
	require.Len(t, body.StatusHistory, 1)
	f.create.AssertExpectations(t)
}

func TestServer_CreateOrder_RequiresIdentity(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "/api/v1/orders", "{}", nil, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_CreateOrder_InvalidPayload(t *testing.T) {
	f := newFixture(t, nil)
	customer := kernel.NewUUID()

	rec := f.do(http.MethodPost, "/api/v1/orders", strings.Replace(newOrderBody, "%s", "not-a-uuid", 1), &customer, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_CreateOrder_MapsUseCaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"price mismatch", errs.NewValueIsInvalidErrorWithCause("price", errors.New("stale")), http.StatusBadRequest},
		{"conflict", errs.NewConcurrencyConflictError("order", "x", 0), http.StatusConflict},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			customer := kernel.NewUUID()
			f.create.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/orders",
				strings.Replace(newOrderBody, "%s", kernel.NewUUID().String(), 1), &customer, "")

			require.Equal(t, tt.code, rec.Code)
			body := decode[httpin.Error](t, rec)
			assert.Equal(t, tt.code, body.Code)
			if tt.code == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "connection refused")
			}
		})
	}
}

func TestServer_ListMyOrders_ScopesToCaller(t *testing.T) {
	f := newFixture(t, nil)
	customer := kernel.NewUUID()

	f.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.CustomerID() != nil && q.CustomerID().IsEqual(customer) && q.Page() == 2 && q.Search() == "ring"
	})).Return(queries.ListOrdersQueryResponse{
		Orders: []queries.OrderSummaryResponse{{ID: kernel.NewUUID(), Number: "ORD-000001", Status: order.Shipped}},
		Total:  21, Page: 2, Limit: 20, TotalPages: 2,
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/mine?page=2&search=ring", "", &customer, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[httpin.OrderList](t, rec)
	require.Len(t, body.Orders, 1)
	assert.Equal(t, "Shipped", body.Orders[0].StatusLabel)
	assert.Equal(t, httpin.Pagination{Page: 2, Limit: 20, Total: 21, TotalPages: 2}, body.Pagination)
	f.list.AssertExpectations(t)
}

func TestServer_ListOrders_AdminOnly(t *testing.T) {
	f := newFixture(t, nil)
	user := kernel.NewUUID()

	rec := f.do(http.MethodGet, "/api/v1/orders", "", &user, "customer")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	f.list.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)

	f.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.CustomerID() == nil && q.Status() == order.Confirmed
	})).Return(queries.ListOrdersQueryResponse{Page: 1, Limit: 20}, nil).Once()

	rec = f.do(http.MethodGet, "/api/v1/orders?status=confirmed", "", &user, "admin")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/orders?status=teleported", "", &user, "admin")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.list.AssertExpectations(t)
}

func TestServer_GetOrder(t *testing.T) {
	f := newFixture(t, nil)
	customer, orderID := kernel.NewUUID(), kernel.NewUUID()

	f.get.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID().IsEqual(orderID) && q.ViewerID().IsEqual(customer) && !q.IsAdmin()
	})).Return(queries.GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "", &customer, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/orders/42", "", &customer, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.get.AssertExpectations(t)
}

func TestServer_ChangeOrderStatus(t *testing.T) {
	admin := kernel.NewUUID()
	updated := sampleOrder(t, kernel.NewUUID())
	require.NoError(t, updated.ChangeStatus(order.Confirmed, "paid", &admin, time.Now()))

	tests := []struct {
		name string
		ret  *order.Order
		err  error
		code int
	}{
		{"confirmed", updated, nil, http.StatusOK},
		{"terminal order", nil, errs.NewInvalidTransitionError("delivered", "shipped", "terminal"), http.StatusConflict},
		{"stale version", nil, errs.NewConcurrencyConflictError("order", "x", 3), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			orderID := kernel.NewUUID()
			f.status.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
				return cmd.OrderID().IsEqual(orderID) && cmd.RawStatus() == "confirmed" &&
					cmd.Note() == "paid" && cmd.ActorID().IsEqual(admin)
			})).Return(tt.ret, tt.err).Once()

			rec := f.do(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status",
				`{"status": "confirmed", "note": "paid"}`, &admin, "admin")

			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			f.status.AssertExpectations(t)
		})
	}
}

func TestServer_ChangeOrderStatus_CustomerForbidden(t *testing.T) {
	f := newFixture(t, nil)
	customer := kernel.NewUUID()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+kernel.NewUUID().String()+"/status",
		`{"status": "cancelled"}`, &customer, "customer")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	f.status.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestServer_UpdateShippingDetails(t *testing.T) {
	f := newFixture(t, nil)
	admin, orderID := kernel.NewUUID(), kernel.NewUUID()
	updated := sampleOrder(t, kernel.NewUUID())

	f.shipping.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateShippingDetailsCommand) bool {
		d := cmd.Details()
		return cmd.OrderID().IsEqual(orderID) && d.TrackingNumber == nil &&
			d.EstimatedDelivery != nil && d.EstimatedDelivery.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	})).Return(updated, nil).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/shipping",
		`{"estimated_delivery": "2026-06-01T00:00:00Z"}`, &admin, "admin")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/shipping", `{}`, &admin, "admin")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.shipping.AssertExpectations(t)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	healthy := newFixture(t, func(context.Context) error { return nil })
	rec := healthy.do(http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := newFixture(t, func(context.Context) error { return errors.New("db unreachable") })
	rec = down.do(http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	customer := kernel.NewUUID()
	healthy.create.On("Handle", mock.Anything, mock.Anything).Return(sampleOrder(t, customer), nil).Once()
	healthy.do(http.MethodPost, "/api/v1/orders",
		strings.Replace(newOrderBody, "%s", kernel.NewUUID().String(), 1), &customer, "")

	rec = healthy.do(http.MethodGet, "/metrics", "", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_orders_created_total 1")
}
