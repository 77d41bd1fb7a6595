package queries

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersParams carries the raw filter values. Zero values mean "no filter"
// for CustomerID, Status and Search, and defaults for Page and Limit.
type ListOrdersParams struct {
	CustomerID *kernel.UUID
	Status     string
	Search     string
	Page       int
	Limit      int
}

type ListOrdersQuery struct {
	customerID *kernel.UUID
	status     order.Status
	search     string
	page       int
	limit      int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(p ListOrdersParams) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		search: strings.TrimSpace(p.Search),
		page:   p.Page,
		limit:  p.Limit,
		guard:  guard.NewConstructorGuard(),
	}

	if p.CustomerID != nil {
		if err := p.CustomerID.Validate(); err != nil {
			return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("customerID", err)
		}
		id := *p.CustomerID
		q.customerID = &id
	}

	if code := strings.TrimSpace(p.Status); code != "" {
		q.status = order.ParseStatus(code)
		if err := q.status.Validate(); err != nil {
			return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("status", err)
		}
	}

	if q.page == 0 {
		q.page = 1
	}
	if q.page < 1 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", p.Page, 1, "unbounded")
	}

	if q.limit == 0 {
		q.limit = DefaultPageSize
	}
	if q.limit < 1 || q.limit > MaxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", p.Limit, 1, MaxPageSize)
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// CustomerID is nil when the listing spans every customer.
func (q ListOrdersQuery) CustomerID() *kernel.UUID { return q.customerID }

// Status is order.Unknown when no status filter was given.
func (q ListOrdersQuery) Status() order.Status { return q.status }
func (q ListOrdersQuery) Search() string { return q.search }
func (q ListOrdersQuery) Page() int { return q.page }
func (q ListOrdersQuery) Limit() int { return q.limit }
func (q ListOrdersQuery) Offset() int { return (q.page - 1) * q.limit }

type OrderSummaryResponse struct {
	ID           kernel.UUID
	Number       string
	CustomerID   kernel.UUID
	Status       order.Status
	ItemCount    int
	Total        kernel.Money
	ShippingName string
	CreatedAt    time.Time
}

type ListOrdersQueryResponse struct {
	Orders     []OrderSummaryResponse
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
