// Package catalogrepo reads product prices and display data from the catalog tables.
package catalogrepo

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const StatusActive = "active"

type ProductDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name     string          `gorm:"size:256;not null"`
	ImageURL string          `gorm:"size:512"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status   string          `gorm:"size:16;not null;default:active"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormCatalog implements ports.CatalogService. Only active products are visible.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) Products(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.Product, error) {
	products := make(map[kernel.UUID]ports.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).
		Where("id IN ? AND status = ?", raw, StatusActive).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(dto.Price)
		if err != nil {
			return nil, err
		}
		products[id] = ports.Product{ID: id, Name: dto.Name, ImageURL: dto.ImageURL, Price: price}
	}
	return products, nil
}
