// Package pgtest starts a disposable PostgreSQL for integration suites.
package pgtest

import (
	"context"
	"testing"
	"time"

	postgres_adapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every migrated table, children first.
const Tables = "notification_outbox, order_status_history, order_items, orders, products, accounts"

// Start runs a postgres:15-alpine container and returns a migrated connection.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return container, nil, err
	}

	if err = postgres_adapter.Migrate(db); err != nil {
		return container, db, err
	}
	return container, db, nil
}

// Truncate empties every table between tests.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE " + Tables + " CASCADE").Error
}

// NewOrder builds a pending order for customerID with a single 45000 item.
func NewOrder(t testing.TB, number string, customerID kernel.UUID, at time.Time) *order.Order {
	t.Helper()

	price, err := kernel.MoneyFromString("45000")
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), 1, price, order.Customization{Material: "18k gold", Size: "7"})
	require.NoError(t, err)
	shipping, err := kernel.NewAddress(kernel.AddressFields{
		Name: "Asha Rao", Phone: "+91 90000 00001", Street: "12 MG Road",
		City: "Bengaluru", State: "Karnataka", PostalCode: "560001", Country: "India",
	})
	require.NoError(t, err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:              kernel.NewUUID(),
		Number:          order.Number(number),
		CustomerID:      customerID,
		Items:           []order.LineItem{item},
		ShippingAddress: shipping,
		Policy:          order.DefaultPricingPolicy(),
		At:              at,
	})
	require.NoError(t, err)
	return o
}
