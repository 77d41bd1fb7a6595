package order_test

import (
	"fmt"
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Codes(t *testing.T) {
	tests := []struct {
		status order.Status
		code   string
		label  string
	}{
		{order.Pending, "pending", "Pending"},
		{order.Confirmed, "confirmed", "Confirmed"},
		{order.InProduction, "in_production", "In Production"},
		{order.QualityCheck, "quality_check", "Quality Check"},
		{order.ReadyToShip, "ready_to_ship", "Ready to Ship"},
		{order.Shipped, "shipped", "Shipped"},
		{order.Delivered, "delivered", "Delivered"},
		{order.Cancelled, "cancelled", "Cancelled"},
	}

	for _, tt := range tests {
		t.Run("should map "+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.status.String())
			assert.Equal(t, tt.label, tt.status.Label())
			assert.Equal(t, tt.status, order.ParseStatus(tt.code))
			require.NoError(t, tt.status.Validate())
		})
	}

	t.Run("should cover every valid status", func(t *testing.T) {
		assert.Len(t, order.AllStatuses(), len(tests))
	})

	t.Run("should parse case insensitively", func(t *testing.T) {
		assert.Equal(t, order.ReadyToShip, order.ParseStatus(" Ready_To_Ship "))
	})

	t.Run("should return Unknown for unrecognised codes", func(t *testing.T) {
		assert.Equal(t, order.Unknown, order.ParseStatus("lost_in_transit"))
		assert.Equal(t, "unknown", order.Unknown.String())
		require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_Description(t *testing.T) {
	t.Run("should return the dedicated text", func(t *testing.T) {
		text, ok := order.Shipped.Description()

		assert.True(t, ok)
		assert.Equal(t, "Your order has been shipped and is on its way to you.", text)
	})

	t.Run("should fall back for statuses without text", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Cancelled, order.Unknown} {
			text, ok := s.Description()

			assert.False(t, ok, s.String())
			assert.Equal(t, order.GenericStatusDescription, text)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range order.AllStatuses() {
		want := s == order.Delivered || s == order.Cancelled
		assert.Equal(t, want, s.IsTerminal(), s.String())
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should allow any non-terminal status to move to any other status", func(t *testing.T) {
		for _, from := range order.AllStatuses() {
			if from.IsTerminal() {
				continue
			}
			for _, to := range order.AllStatuses() {
				if to == from {
					continue
				}
				t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
					got, err := from.TransitionTo(to)

					require.NoError(t, err)
					assert.Equal(t, to, got)
				})
			}
		}
	})

	t.Run("should reject leaving a terminal status", func(t *testing.T) {
		for _, from := range []order.Status{order.Delivered, order.Cancelled} {
			for _, to := range order.AllStatuses() {
				got, err := from.TransitionTo(to)

				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Equal(t, order.Unknown, got)
			}
		}
	})

	t.Run("should reject an unrecognised target", func(t *testing.T) {
		_, err := order.Confirmed.TransitionTo(order.Unknown)

		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "confirmed", transitionErr.From)
		assert.Contains(t, transitionErr.Reason, "not recognised")
	})

	t.Run("should reject a move to the same status", func(t *testing.T) {
		_, err := order.Shipped.TransitionTo(order.Shipped)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should allow a backward correction", func(t *testing.T) {
		got, err := order.Shipped.TransitionTo(order.Confirmed)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, got)
	})
}
