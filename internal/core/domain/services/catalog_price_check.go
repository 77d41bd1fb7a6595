package services

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// CatalogPriceCheck verifies submitted line items against current catalog
// prices. A product missing from prices, or priced differently, is a
// validation failure; the captured price is never silently replaced.
type CatalogPriceCheck struct{}

func NewCatalogPriceCheck() CatalogPriceCheck {
	return CatalogPriceCheck{}
}

// Check returns one joined error covering every offending item.
func (CatalogPriceCheck) Check(items []order.LineItem, prices map[kernel.UUID]kernel.Money) error {
	var problems []error
	for i, item := range items {
		current, ok := prices[item.ProductID()]
		if !ok {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("product",
				fmt.Errorf("item %d: product %s is not in the catalog", i, item.ProductID())))
			continue
		}
		if !current.IsEqual(item.Price()) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("price",
				fmt.Errorf("item %d: submitted %s but catalog price is %s", i, item.Price(), current)))
		}
	}
	return errors.Join(problems...)
}
