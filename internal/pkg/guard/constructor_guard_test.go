package guard_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("receipt must be created via NewReceipt")

	t.Run("should pass once constructed", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("should return the caller's error for a zero value", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("should fall back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})

	t.Run("should survive copies", func(t *testing.T) {
		type receipt struct {
			number string
			guard  guard.ConstructorGuard
		}
		original := receipt{number: "ORD-000001", guard: guard.NewConstructorGuard()}
		copied := original

		require.NoError(t, copied.guard.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_ZeroValuesAreRejected(t *testing.T) {
	tests := []struct {
		name     string
		validate func() error
		want     error
	}{
		{"money", kernel.Money{}.Validate, kernel.ErrMoneyIsNotConstructed},
		{"address", kernel.Address{}.Validate, kernel.ErrAddressIsNotConstructed},
		{"line item", order.LineItem{}.Validate, order.ErrLineItemIsNotConstructed},
		{"pricing policy", order.PricingPolicy{}.Validate, order.ErrPricingPolicyIsNotConstructed},
		{"create order command", commands.CreateOrderCommand{}.Validate, commands.ErrCreateOrderCommandIsNotConstructed},
		{"change status command", commands.ChangeOrderStatusCommand{}.Validate, commands.ErrChangeOrderStatusCommandIsNotConstructed},
		{"shipping command", commands.UpdateShippingDetailsCommand{}.Validate, commands.ErrUpdateShippingDetailsCommandIsNotConstructed},
		{"dispatch command", commands.DispatchNotificationsCommand{}.Validate, commands.ErrDispatchNotificationsCommandIsNotConstructed},
		{"get order query", queries.GetOrderQuery{}.Validate, queries.ErrGetOrderQueryIsNotConstructed},
		{"list orders query", queries.ListOrdersQuery{}.Validate, queries.ErrListOrdersQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run("should reject a zero "+tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.validate(), tt.want)
		})
	}
}

func TestConstructorGuard_ConstructedValuesPass(t *testing.T) {
	price, err := kernel.MoneyFromString("45000")
	require.NoError(t, err)
	require.NoError(t, price.Validate())

	item, err := order.NewLineItem(kernel.NewUUID(), 2, price, order.Customization{Engraving: "A & R"})
	require.NoError(t, err)
	require.NoError(t, item.Validate())

	require.NoError(t, order.DefaultPricingPolicy().Validate())

	cmd, err := commands.NewDispatchNotificationsCommand(25)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	query, err := queries.NewListOrdersQuery(queries.ListOrdersParams{})
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}
