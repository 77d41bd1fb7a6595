package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.loadOrder(db, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if !query.IsAdmin() && !resp.CustomerID.IsEqual(query.ViewerID()) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if resp.Items, err = h.loadItems(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.History, err = h.loadHistory(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadOrder(db *gorm.DB, id kernel.UUID) (GetOrderQueryResponse, error) {
	var (
		resp                                   GetOrderQueryResponse
		orderID, customerID                    uuid.UUID
		status                                 string
		subtotal, tax, shipping, discount, tot decimal.Decimal
		eta                                    sql.NullTime
	)

	row := db.Raw(`
		SELECT
			id, order_number, customer_id, status,
			shipping_name, shipping_phone, shipping_street, shipping_city,
			shipping_state, shipping_postal_code, shipping_country,
			billing_name, billing_phone, billing_street, billing_city,
			billing_state, billing_postal_code, billing_country,
			subtotal, tax, shipping_fee, discount, total,
			tracking_number, estimated_delivery, created_at, updated_at
		FROM orders
		WHERE id = ?
	`, id.Bytes()).Row()

	s, b := &resp.ShippingAddress, &resp.BillingAddress
	err := row.Scan(
		&orderID, &resp.Number, &customerID, &status,
		&s.Name, &s.Phone, &s.Street, &s.City, &s.State, &s.PostalCode, &s.Country,
		&b.Name, &b.Phone, &b.Street, &b.City, &b.State, &b.PostalCode, &b.Country,
		&subtotal, &tax, &shipping, &discount, &tot,
		&resp.TrackingNumber, &eta, &resp.CreatedAt, &resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Status = order.ParseStatus(status)

	amounts, err := moneys(subtotal, tax, shipping, discount, tot)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Subtotal, resp.Tax, resp.Shipping, resp.Discount, resp.Total = amounts[0], amounts[1], amounts[2], amounts[3], amounts[4]

	if eta.Valid {
		t := eta.Time.UTC()
		resp.EstimatedDelivery = &t
	}
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.UpdatedAt = resp.UpdatedAt.UTC()
	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(db *gorm.DB, id kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := db.Raw(`
		SELECT
			product_id, quantity, price,
			material, size, color, engraving, special_instructions
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			item      OrderItemResponse
			productID uuid.UUID
			price     decimal.Decimal
			c         = &item.Customization
		)
		if err = rows.Scan(&productID, &item.Quantity, &price,
			&c.Material, &c.Size, &c.Color, &c.Engraving, &c.SpecialInstructions); err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if item.Price, err = kernel.NewMoney(price); err != nil {
			return nil, err
		}
		item.LineTotal = item.Price.MulInt(item.Quantity)
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) loadHistory(db *gorm.DB, id kernel.UUID) ([]StatusChangeResponse, error) {
	rows, err := db.Raw(`
		SELECT status, note, updated_by, changed_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY seq
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusChangeResponse, 0)
	for rows.Next() {
		var (
			change    StatusChangeResponse
			status    string
			updatedBy *uuid.UUID
			at        time.Time
		)
		if err = rows.Scan(&status, &change.Note, &updatedBy, &at); err != nil {
			return nil, err
		}

		change.Status = order.ParseStatus(status)
		change.At = at.UTC()
		if updatedBy != nil {
			actor, actorErr := kernel.UUIDFromBytes((*updatedBy)[:])
			if actorErr != nil {
				return nil, actorErr
			}
			change.UpdatedBy = &actor
		}
		history = append(history, change)
	}

	return history, rows.Err()
}

func moneys(amounts ...decimal.Decimal) ([]kernel.Money, error) {
	out := make([]kernel.Money, 0, len(amounts))
	for _, a := range amounts {
		m, err := kernel.NewMoney(a)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
