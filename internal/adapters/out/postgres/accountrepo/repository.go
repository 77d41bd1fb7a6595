// Package accountrepo reads customer contact details for notifications.
package accountrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"size:128;not null"`
	Email string    `gorm:"size:256;uniqueIndex;not null"`
	Phone string    `gorm:"size:32"`
	Role  string    `gorm:"size:16;not null;default:customer"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

type GormAccounts struct {
	db *gorm.DB
}

func NewGormAccounts(db *gorm.DB) *GormAccounts {
	return &GormAccounts{db: db}
}

func (a *GormAccounts) Get(ctx context.Context, id kernel.UUID) (ports.Account, error) {
	if err := id.Validate(); err != nil {
		return ports.Account{}, err
	}

	var dto AccountDTO
	if err := a.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Account{}, errs.NewObjectNotFoundError("account", id.String())
		}
		return ports.Account{}, err
	}

	return ports.Account{
		ID:    id,
		Name:  dto.Name,
		Email: dto.Email,
		Phone: dto.Phone,
		Role:  ports.Role(dto.Role),
	}, nil
}
