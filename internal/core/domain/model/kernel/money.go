package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for store amounts.
const MoneyScale int32 = 2

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromString")

// Money is a non-negative amount in the store currency, rounded to MoneyScale.
//
// Arithmetic never produces a negative value: Sub reports an error instead,
// callers that need clamping use SubClamped.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates amount and rounds it half away from zero to two places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}
	return Money{amount: amount.Round(MoneyScale), guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal literal such as "450.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a number: %w", s, err))
	}
	return NewMoney(d)
}

// MoneyFromInt builds a whole-unit amount; negative values fail.
func MoneyFromInt(units int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(units))
}

// ZeroMoney is the constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Sub fails when other is larger than m.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// SubClamped subtracts other and stops at zero. The flag reports whether clamping happened.
func (m Money) SubClamped(other Money) (Money, bool) {
	if other.amount.GreaterThan(m.amount) {
		return ZeroMoney(), true
	}
	return Money{amount: m.amount.Sub(other.amount), guard: guard.NewConstructorGuard()}, false
}

func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n))).Round(MoneyScale), guard: guard.NewConstructorGuard()}
}

// MulRate applies a non-negative rate such as 0.18 and rounds the result.
func (m Money) MulRate(rate decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(rate))
}

// WithinTolerance reports whether |m - other| <= tolerance.
func (m Money) WithinTolerance(other Money, tolerance decimal.Decimal) bool {
	return m.amount.Sub(other.amount).Abs().LessThanOrEqual(tolerance)
}
