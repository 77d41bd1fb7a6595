package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// Product is the catalog's view of an item for sale.
type Product struct {
	ID       kernel.UUID
	Name     string
	ImageURL string
	Price    kernel.Money
}

// CatalogService is read-only access to the product catalog.
type CatalogService interface {
	// Products returns the known products among ids. Unknown ids are absent
	// from the result rather than reported as errors.
	Products(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]Product, error)
}

// Role is an account's permission level.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Account is the account service's view of a user.
type Account struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string
	Role  Role
}

// AccountService is read-only access to user accounts.
type AccountService interface {
	Get(ctx context.Context, id kernel.UUID) (Account, error)
}
