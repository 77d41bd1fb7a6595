package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// SubtotalTolerance is the largest accepted difference between a subtotal
// claimed by a client and the one computed from the items.
//
//nolint:gochecknoglobals // constant decimal
var SubtotalTolerance = decimal.RequireFromString("0.01")

var ErrPricingPolicyIsNotConstructed = errs.NewValueIsRequiredError("pricing policy must be created via NewPricingPolicy")

// Pricing is the monetary breakdown of an order.
// Total always equals Subtotal + Tax + Shipping - Discount and is never negative.
type Pricing struct {
	subtotal        kernel.Money
	tax             kernel.Money
	shipping        kernel.Money
	discount        kernel.Money
	total           kernel.Money
	discountClamped bool
}

// NewPricing builds a breakdown from its components and computes the total.
func NewPricing(subtotal, tax, shipping, discount kernel.Money) (Pricing, error) {
	if err := errors.Join(
		subtotal.Validate(),
		tax.Validate(),
		shipping.Validate(),
		discount.Validate(),
	); err != nil {
		return Pricing{}, err
	}

	return RecomputeTotal(Pricing{subtotal: subtotal, tax: tax, shipping: shipping, discount: discount}), nil
}

// RestorePricing rebuilds a stored breakdown and rejects an inconsistent total.
func RestorePricing(subtotal, tax, shipping, discount, total kernel.Money, discountClamped bool) (Pricing, error) {
	p, err := NewPricing(subtotal, tax, shipping, discount)
	if err != nil {
		return Pricing{}, err
	}
	if !p.total.IsEqual(total) {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("pricing total",
			fmt.Errorf("stored total %s does not match computed total %s", total, p.total))
	}
	p.discountClamped = p.discountClamped || discountClamped
	return p, nil
}

// RecomputeTotal derives Total from the other components.
//
// A discount larger than subtotal + tax + shipping is reduced to that sum,
// so the total stops at zero, and DiscountClamped is set.
func RecomputeTotal(p Pricing) Pricing {
	gross := p.subtotal.Add(p.tax).Add(p.shipping)

	total, clamped := gross.SubClamped(p.discount)
	if clamped {
		p.discount = gross
		p.discountClamped = true
	}
	p.total = total
	return p
}

func (p Pricing) Subtotal() kernel.Money { return p.subtotal }
func (p Pricing) Tax() kernel.Money { return p.tax }
func (p Pricing) Shipping() kernel.Money { return p.shipping }
func (p Pricing) Discount() kernel.Money { return p.discount }
func (p Pricing) Total() kernel.Money { return p.total }

// DiscountClamped reports that the requested discount exceeded the order value.
func (p Pricing) DiscountClamped() bool { return p.discountClamped }

// IsConsistent checks the total invariant.
func (p Pricing) IsConsistent() bool {
	if p.total.Validate() != nil {
		return false
	}
	return p.subtotal.Add(p.tax).Add(p.shipping).Decimal().
		Sub(p.discount.Decimal()).Equal(p.total.Decimal())
}

// PricingPolicy holds the store's tax and shipping rules.
type PricingPolicy struct {
	taxRate               decimal.Decimal
	freeShippingThreshold kernel.Money
	flatShippingFee       kernel.Money
	guard                 guard.ConstructorGuard
}

// NewPricingPolicy accepts a tax rate in [0, 1], e.g. 0.18 for 18%.
func NewPricingPolicy(taxRate decimal.Decimal, freeShippingThreshold, flatShippingFee kernel.Money) (PricingPolicy, error) {
	var rateErr error
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		rateErr = errs.NewValueIsOutOfRangeError("tax rate", taxRate.String(), "0", "1")
	}

	if err := errors.Join(rateErr, freeShippingThreshold.Validate(), flatShippingFee.Validate()); err != nil {
		return PricingPolicy{}, err
	}

	return PricingPolicy{
		taxRate:               taxRate,
		freeShippingThreshold: freeShippingThreshold,
		flatShippingFee:       flatShippingFee,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// DefaultPricingPolicy is 18% tax, free shipping from 10000, otherwise 500.
func DefaultPricingPolicy() PricingPolicy {
	threshold, _ := kernel.MoneyFromInt(10000)
	fee, _ := kernel.MoneyFromInt(500)
	return PricingPolicy{
		taxRate:               decimal.RequireFromString("0.18"),
		freeShippingThreshold: threshold,
		flatShippingFee:       fee,
		guard:                 guard.NewConstructorGuard(),
	}
}

func (p PricingPolicy) Validate() error {
	return p.guard.Validate(ErrPricingPolicyIsNotConstructed)
}

func (p PricingPolicy) TaxRate() decimal.Decimal { return p.taxRate }

// Quote prices a subtotal. Tax applies to the subtotal only, shipping is free
// at or above the threshold, and the discount is subtracted last.
func (p PricingPolicy) Quote(subtotal, discount kernel.Money) (Pricing, error) {
	if err := errors.Join(p.Validate(), subtotal.Validate(), discount.Validate()); err != nil {
		return Pricing{}, err
	}

	tax, err := subtotal.MulRate(p.taxRate)
	if err != nil {
		return Pricing{}, err
	}

	shipping := p.flatShippingFee
	if subtotal.Cmp(p.freeShippingThreshold) >= 0 {
		shipping = kernel.ZeroMoney()
	}

	return NewPricing(subtotal, tax, shipping, discount)
}

// Subtotal sums the line totals of items.
func Subtotal(items []LineItem) kernel.Money {
	sum := kernel.ZeroMoney()
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// VerifyClaimedSubtotal recomputes the subtotal and rejects a claim that
// differs by more than SubtotalTolerance.
func VerifyClaimedSubtotal(items []LineItem, claimed kernel.Money) (kernel.Money, error) {
	computed := Subtotal(items)
	if !computed.WithinTolerance(claimed, SubtotalTolerance) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("claimed %s but items sum to %s", claimed, computed))
	}
	return computed, nil
}
