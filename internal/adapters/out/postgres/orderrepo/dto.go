// Package orderrepo persists order aggregates in PostgreSQL through GORM.
//
// An order spans three tables: orders, order_items and order_status_history.
// Items are written once; history rows are append-only.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber       string          `gorm:"size:32;uniqueIndex;not null"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Status            string          `gorm:"size:32;index;not null"`
	ShippingAddress   AddressDTO      `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress    AddressDTO      `gorm:"embedded;embeddedPrefix:billing_"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShippingFee       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountClamped   bool            `gorm:"not null;default:false"`
	TrackingNumber    string          `gorm:"size:64"`
	EstimatedDelivery *time.Time
	CreatedAt         time.Time `gorm:"index;autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
	Version           int64     `gorm:"not null;default:0"`

	Items   []OrderItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusChangeDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	Name       string `gorm:"size:128"`
	Phone      string `gorm:"size:32"`
	Street     string `gorm:"size:256"`
	City       string `gorm:"size:128"`
	State      string `gorm:"size:128"`
	PostalCode string `gorm:"size:16"`
	Country    string `gorm:"size:64"`
}

type OrderItemDTO struct {
	OrderID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position            int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity            int             `gorm:"not null"`
	Price               decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Material            string
	Size                string
	Color               string
	Engraving           string
	SpecialInstructions string
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type StatusChangeDTO struct {
	OrderID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq       int        `gorm:"primaryKey;autoIncrement:false"`
	Status    string     `gorm:"size:32;not null"`
	Note      string
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	ChangedAt time.Time  `gorm:"not null"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Name:       a.Name(),
		Phone:      a.Phone(),
		Street:     a.Street(),
		City:       a.City(),
		State:      a.State(),
		PostalCode: a.PostalCode(),
		Country:    a.Country(),
	}
}

func (a AddressDTO) toDomain() (kernel.Address, error) {
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

func historyFromDomain(orderID uuid.UUID, history []order.StatusChange) []StatusChangeDTO {
	dtos := make([]StatusChangeDTO, 0, len(history))
	for i, change := range history {
		var updatedBy *uuid.UUID
		if actor := change.UpdatedBy(); actor != nil {
			raw := actor.Bytes()
			updatedBy = &raw
		}
		dtos = append(dtos, StatusChangeDTO{
			OrderID:   orderID,
			Seq:       i + 1,
			Status:    change.Status().String(),
			Note:      change.Note(),
			UpdatedBy: updatedBy,
			ChangedAt: change.At(),
		})
	}
	return dtos
}

func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()
	pricing := aggregate.Pricing()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		c := item.Customization()
		items = append(items, OrderItemDTO{
			OrderID:             id,
			Position:            i + 1,
			ProductID:           item.ProductID().Bytes(),
			Quantity:            item.Quantity(),
			Price:               item.Price().Decimal(),
			Material:            c.Material,
			Size:                c.Size,
			Color:               c.Color,
			Engraving:           c.Engraving,
			SpecialInstructions: c.SpecialInstructions,
		})
	}

	return OrderDTO{
		ID:                id,
		OrderNumber:       aggregate.Number().String(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		Status:            aggregate.Status().String(),
		ShippingAddress:   addressFromDomain(aggregate.ShippingAddress()),
		BillingAddress:    addressFromDomain(aggregate.BillingAddress()),
		Subtotal:          pricing.Subtotal().Decimal(),
		Tax:               pricing.Tax().Decimal(),
		ShippingFee:       pricing.Shipping().Decimal(),
		Discount:          pricing.Discount().Decimal(),
		Total:             pricing.Total().Decimal(),
		DiscountClamped:   pricing.DiscountClamped(),
		TrackingNumber:    aggregate.TrackingNumber(),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		Version:           aggregate.Version(),
		Items:             items,
		History:           historyFromDomain(id, aggregate.History()),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemDTO.toDomain()
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.StatusChange, 0, len(dto.History))
	for _, h := range dto.History {
		var actor *kernel.UUID
		if h.UpdatedBy != nil {
			a, actorErr := kernel.UUIDFromBytes((*h.UpdatedBy)[:])
			if actorErr != nil {
				return nil, actorErr
			}
			actor = &a
		}
		history = append(history, order.RestoreStatusChange(order.ParseStatus(h.Status), h.ChangedAt, h.Note, actor))
	}

	shipping, err := dto.ShippingAddress.toDomain()
	if err != nil {
		return nil, err
	}
	billing, err := dto.BillingAddress.toDomain()
	if err != nil {
		return nil, err
	}

	pricing, err := pricingToDomain(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                id,
		Number:            order.Number(dto.OrderNumber),
		CustomerID:        customerID,
		Items:             items,
		ShippingAddress:   shipping,
		BillingAddress:    billing,
		Pricing:           pricing,
		Status:            order.ParseStatus(dto.Status),
		History:           history,
		TrackingNumber:    dto.TrackingNumber,
		EstimatedDelivery: dto.EstimatedDelivery,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
		Version:           dto.Version,
	})
}

func (i OrderItemDTO) toDomain() (order.LineItem, error) {
	productID, err := kernel.UUIDFromBytes(i.ProductID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.NewMoney(i.Price)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(productID, i.Quantity, price, order.Customization{
		Material:            i.Material,
		Size:                i.Size,
		Color:               i.Color,
		Engraving:           i.Engraving,
		SpecialInstructions: i.SpecialInstructions,
	})
}

func pricingToDomain(dto OrderDTO) (order.Pricing, error) {
	amounts := make([]kernel.Money, 0, 5)
	for _, d := range []decimal.Decimal{dto.Subtotal, dto.Tax, dto.ShippingFee, dto.Discount, dto.Total} {
		m, err := kernel.NewMoney(d)
		if err != nil {
			return order.Pricing{}, err
		}
		amounts = append(amounts, m)
	}
	return order.RestorePricing(amounts[0], amounts[1], amounts[2], amounts[3], amounts[4], dto.DiscountClamped)
}
