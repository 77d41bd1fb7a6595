package postgres

import (
	"fmt"

	"storefront/internal/adapters/out/postgres/accountrepo"
	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service reads or writes,
// plus the order number sequence.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&accountrepo.AccountDTO{},
		&catalogrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusChangeDTO{},
		&outboxrepo.EntryDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS " + orderrepo.SequenceName).Error; err != nil {
		return fmt.Errorf("create order number sequence: %w", err)
	}

	// Partial index for the outbox claim query.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_notification_outbox_pending
		ON notification_outbox (created_at) WHERE dispatched_at IS NULL`).Error; err != nil {
		return fmt.Errorf("create outbox index: %w", err)
	}
	return nil
}
