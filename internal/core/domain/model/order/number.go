package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// DefaultNumberPrefix is prepended to every allocated order number.
const DefaultNumberPrefix = "ORD"

// Number is the human-readable order identifier, e.g. "ORD-000042".
type Number string

// NewNumber formats a sequence value allocated by the database.
func NewNumber(prefix string, seq int64) (Number, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errs.NewValueIsRequiredError("order number prefix")
	}
	if seq < 1 {
		return "", errs.NewValueIsOutOfRangeError("order number sequence", seq, 1, "unbounded")
	}
	return Number(fmt.Sprintf("%s-%06d", prefix, seq)), nil
}

func (n Number) String() string {
	return string(n)
}

func (n Number) Validate() error {
	if strings.TrimSpace(string(n)) == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	return nil
}
