package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError("line item must be created via NewLineItem")

// Customization holds free-form personalisation requested for a piece.
// Every field is optional.
type Customization struct {
	Material            string
	Size                string
	Color               string
	Engraving           string
	SpecialInstructions string
}

func (c Customization) normalize() Customization {
	return Customization{
		Material:            strings.TrimSpace(c.Material),
		Size:                strings.TrimSpace(c.Size),
		Color:               strings.TrimSpace(c.Color),
		Engraving:           strings.TrimSpace(c.Engraving),
		SpecialInstructions: strings.TrimSpace(c.SpecialInstructions),
	}
}

// IsEmpty reports whether no customization was requested.
func (c Customization) IsEmpty() bool {
	return c.normalize() == Customization{}
}

// LineItem is one product in an order. The unit price is captured when the
// order is placed and never follows later catalog changes.
type LineItem struct {
	productID     kernel.UUID
	quantity      int
	price         kernel.Money
	customization Customization
	guard         guard.ConstructorGuard
}

func NewLineItem(productID kernel.UUID, quantity int, price kernel.Money, customization Customization) (LineItem, error) {
	item := LineItem{
		productID:     productID,
		quantity:      quantity,
		price:         price,
		customization: customization.normalize(),
	}

	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}

	if err := errors.Join(productID.Validate(), quantityErr, price.Validate()); err != nil {
		return LineItem{}, err
	}

	item.guard = guard.NewConstructorGuard()
	return item, nil
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) ProductID() kernel.UUID { return i.productID }
func (i LineItem) Quantity() int { return i.quantity }
func (i LineItem) Price() kernel.Money { return i.price }
func (i LineItem) Customization() Customization { return i.customization }

// LineTotal is price × quantity.
func (i LineItem) LineTotal() kernel.Money {
	return i.price.MulInt(i.quantity)
}
