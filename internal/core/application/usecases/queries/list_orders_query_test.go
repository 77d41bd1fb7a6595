package queries_test

import (
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery_Defaults(t *testing.T) {
	q, err := queries.NewListOrdersQuery(queries.ListOrdersParams{})

	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Nil(t, q.CustomerID())
	assert.Equal(t, order.Unknown, q.Status())
	assert.Equal(t, 1, q.Page())
	assert.Equal(t, queries.DefaultPageSize, q.Limit())
	assert.Equal(t, 0, q.Offset())
}

func TestNewListOrdersQuery_Filters(t *testing.T) {
	customer := kernel.NewUUID()
	q, err := queries.NewListOrdersQuery(queries.ListOrdersParams{
		CustomerID: &customer,
		Status:     " In_Production ",
		Search:     "  asha ",
		Page:       3,
		Limit:      10,
	})

	require.NoError(t, err)
	require.NotNil(t, q.CustomerID())
	assert.True(t, q.CustomerID().IsEqual(customer))
	assert.Equal(t, order.InProduction, q.Status())
	assert.Equal(t, "asha", q.Search())
	assert.Equal(t, 20, q.Offset())
}

func TestNewListOrdersQuery_Invalid(t *testing.T) {
	nilCustomer := kernel.UUID{}

	tests := []struct {
		name   string
		params queries.ListOrdersParams
		target error
	}{
		{"unknown status", queries.ListOrdersParams{Status: "teleported"}, errs.ErrValueIsInvalid},
		{"nil customer", queries.ListOrdersParams{CustomerID: &nilCustomer}, errs.ErrValueIsInvalid},
		{"negative page", queries.ListOrdersParams{Page: -1}, errs.ErrValueIsOutOfRange},
		{"limit too large", queries.ListOrdersParams{Limit: queries.MaxPageSize + 1}, errs.ErrValueIsOutOfRange},
		{"negative limit", queries.ListOrdersParams{Limit: -5}, errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewListOrdersQuery(tt.params)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestListOrdersQuery_ZeroValueIsNotConstructed(t *testing.T) {
	assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}

func TestNewGetOrderQuery(t *testing.T) {
	orderID, viewer := kernel.NewUUID(), kernel.NewUUID()

	q, err := queries.NewGetOrderQuery(orderID, viewer, true)
	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.True(t, q.OrderID().IsEqual(orderID))
	assert.True(t, q.ViewerID().IsEqual(viewer))
	assert.True(t, q.IsAdmin())

	_, err = queries.NewGetOrderQuery(kernel.UUID{}, viewer, false)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}
