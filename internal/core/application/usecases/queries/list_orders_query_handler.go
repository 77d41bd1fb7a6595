package queries

import (
	"context"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns one page of orders, newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	where, args := filters(query)
	db := h.db.WithContext(ctx)

	var total int64
	if err := db.Raw(`SELECT count(*) FROM orders o`+where, args...).Scan(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, err
	}

	rows, err := db.Raw(`
		SELECT
			o.id, o.order_number, o.customer_id, o.status, o.total,
			o.shipping_name, o.created_at,
			(SELECT count(*) FROM order_items i WHERE i.order_id = o.id)
		FROM orders o`+where+`
		ORDER BY o.created_at DESC, o.order_number DESC
		LIMIT ? OFFSET ?
	`, append(args, query.Limit(), query.Offset())...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0, query.Limit())
	for rows.Next() {
		var (
			summary        OrderSummaryResponse
			id, customerID uuid.UUID
			status         string
			amount         decimal.Decimal
			createdAt      time.Time
		)
		if err = rows.Scan(&id, &summary.Number, &customerID, &status, &amount,
			&summary.ShippingName, &createdAt, &summary.ItemCount); err != nil {
			return ListOrdersQueryResponse{}, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return ListOrdersQueryResponse{}, err
		}
		if summary.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return ListOrdersQueryResponse{}, err
		}
		if summary.Total, err = kernel.NewMoney(amount); err != nil {
			return ListOrdersQueryResponse{}, err
		}
		summary.Status = order.ParseStatus(status)
		summary.CreatedAt = createdAt.UTC()
		orders = append(orders, summary)
	}
	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		Orders:     orders,
		Total:      total,
		Page:       query.Page(),
		Limit:      query.Limit(),
		TotalPages: totalPages(total, query.Limit()),
	}, nil
}

func filters(query ListOrdersQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if id := query.CustomerID(); id != nil {
		clauses = append(clauses, "o.customer_id = ?")
		args = append(args, id.Bytes())
	}
	if query.Status() != order.Unknown {
		clauses = append(clauses, "o.status = ?")
		args = append(args, query.Status().String())
	}
	if query.Search() != "" {
		pattern := "%" + likeEscaper.Replace(query.Search()) + "%"
		clauses = append(clauses, "(o.order_number ILIKE ? OR o.shipping_name ILIKE ?)")
		args = append(args, pattern, pattern)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
