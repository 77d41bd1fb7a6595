package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Customization struct {
	Material            string `json:"material,omitempty"`
	Size                string `json:"size,omitempty"`
	Color               string `json:"color,omitempty"`
	Engraving           string `json:"engraving,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

type NewOrderItem struct {
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Customization Customization   `json:"customization"`
}

type NewOrder struct {
	Items           []NewOrderItem   `json:"items"`
	ShippingAddress Address          `json:"shipping_address"`
	BillingAddress  *Address         `json:"billing_address,omitempty"`
	Subtotal        *decimal.Decimal `json:"subtotal,omitempty"`
}

type StatusUpdate struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type ShippingUpdate struct {
	TrackingNumber    *string    `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	ShippingAddress   *Address   `json:"shipping_address,omitempty"`
}

type OrderItem struct {
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	Customization Customization   `json:"customization"`
}

type StatusChange struct {
	Status    string    `json:"status"`
	Label     string    `json:"label"`
	Note      string    `json:"note,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Order struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"order_number"`
	CustomerID        string          `json:"customer_id"`
	Status            string          `json:"status"`
	StatusLabel       string          `json:"status_label"`
	Items             []OrderItem     `json:"items"`
	ShippingAddress   Address         `json:"shipping_address"`
	BillingAddress    Address         `json:"billing_address"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	Shipping          decimal.Decimal `json:"shipping"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	TrackingNumber    string          `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	StatusHistory     []StatusChange  `json:"status_history"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type OrderSummary struct {
	ID           string          `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   string          `json:"customer_id"`
	Status       string          `json:"status"`
	StatusLabel  string          `json:"status_label"`
	ItemCount    int             `json:"item_count"`
	Total        decimal.Decimal `json:"total"`
	ShippingName string          `json:"shipping_name"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

func (a Address) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(kernel.AddressFields{
		Name:       a.Name,
		Phone:      a.Phone,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	})
}

func addressFromFields(f kernel.AddressFields) Address {
	return Address{
		Name:       f.Name,
		Phone:      f.Phone,
		Street:     f.Street,
		City:       f.City,
		State:      f.State,
		PostalCode: f.PostalCode,
		Country:    f.Country,
	}
}

func (c Customization) toDomain() order.Customization {
	return order.Customization(c)
}

func customizationFromDomain(c order.Customization) Customization {
	return Customization(c)
}

func optionalID(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func orderFromAggregate(o *order.Order) Order {
	pricing := o.Pricing()
	resp := Order{
		ID:                o.ID().String(),
		OrderNumber:       o.Number().String(),
		CustomerID:        o.CustomerID().String(),
		Status:            o.Status().String(),
		StatusLabel:       o.Status().Label(),
		Items:             make([]OrderItem, 0, len(o.Items())),
		ShippingAddress:   addressFromFields(o.ShippingAddress().Fields()),
		BillingAddress:    addressFromFields(o.BillingAddress().Fields()),
		Subtotal:          pricing.Subtotal().Decimal(),
		Tax:               pricing.Tax().Decimal(),
		Shipping:          pricing.Shipping().Decimal(),
		Discount:          pricing.Discount().Decimal(),
		Total:             pricing.Total().Decimal(),
		TrackingNumber:    o.TrackingNumber(),
		EstimatedDelivery: o.EstimatedDelivery(),
		StatusHistory:     make([]StatusChange, 0, len(o.History())),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}

	for _, item := range o.Items() {
		resp.Items = append(resp.Items, OrderItem{
			ProductID:     item.ProductID().String(),
			Quantity:      item.Quantity(),
			Price:         item.Price().Decimal(),
			LineTotal:     item.LineTotal().Decimal(),
			Customization: customizationFromDomain(item.Customization()),
		})
	}
	for _, change := range o.History() {
		resp.StatusHistory = append(resp.StatusHistory, StatusChange{
			Status:    change.Status().String(),
			Label:     change.Status().Label(),
			Note:      change.Note(),
			UpdatedBy: optionalID(change.UpdatedBy()),
			Timestamp: change.At(),
		})
	}
	return resp
}

func orderFromDetails(d queries.GetOrderQueryResponse) Order {
	resp := Order{
		ID:                d.ID.String(),
		OrderNumber:       d.Number,
		CustomerID:        d.CustomerID.String(),
		Status:            d.Status.String(),
		StatusLabel:       d.Status.Label(),
		Items:             make([]OrderItem, 0, len(d.Items)),
		ShippingAddress:   addressFromFields(d.ShippingAddress),
		BillingAddress:    addressFromFields(d.BillingAddress),
		Subtotal:          d.Subtotal.Decimal(),
		Tax:               d.Tax.Decimal(),
		Shipping:          d.Shipping.Decimal(),
		Discount:          d.Discount.Decimal(),
		Total:             d.Total.Decimal(),
		TrackingNumber:    d.TrackingNumber,
		EstimatedDelivery: d.EstimatedDelivery,
		StatusHistory:     make([]StatusChange, 0, len(d.History)),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}

	for _, item := range d.Items {
		resp.Items = append(resp.Items, OrderItem{
			ProductID:     item.ProductID.String(),
			Quantity:      item.Quantity,
			Price:         item.Price.Decimal(),
			LineTotal:     item.LineTotal.Decimal(),
			Customization: customizationFromDomain(item.Customization),
		})
	}
	for _, change := range d.History {
		resp.StatusHistory = append(resp.StatusHistory, StatusChange{
			Status:    change.Status.String(),
			Label:     change.Status.Label(),
			Note:      change.Note,
			UpdatedBy: optionalID(change.UpdatedBy),
			Timestamp: change.At,
		})
	}
	return resp
}

func orderListFromPage(page queries.ListOrdersQueryResponse) OrderList {
	list := OrderList{
		Orders: make([]OrderSummary, 0, len(page.Orders)),
		Pagination: Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}
	for _, o := range page.Orders {
		list.Orders = append(list.Orders, OrderSummary{
			ID:           o.ID.String(),
			OrderNumber:  o.Number,
			CustomerID:   o.CustomerID.String(),
			Status:       o.Status.String(),
			StatusLabel:  o.Status.Label(),
			ItemCount:    o.ItemCount,
			Total:        o.Total.Decimal(),
			ShippingName: o.ShippingName,
			CreatedAt:    o.CreatedAt,
		})
	}
	return list
}
