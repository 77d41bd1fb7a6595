// Package outboxrepo stores notification intents written alongside order changes.
package outboxrepo

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Kind         string    `gorm:"size:32;not null"`
	Status       string    `gorm:"size:32;not null"`
	Note         string
	CreatedAt    time.Time  `gorm:"index;autoCreateTime:false"`
	DispatchedAt *time.Time `gorm:"index"`
}

func (EntryDTO) TableName() string {
	return "notification_outbox"
}

type GormNotificationOutbox struct {
	db *gorm.DB
}

func NewGormNotificationOutbox(db *gorm.DB) *GormNotificationOutbox {
	return &GormNotificationOutbox{db: db}
}

func (r *GormNotificationOutbox) Enqueue(ctx context.Context, entry ports.OutboxEntry) error {
	if err := entry.ID.Validate(); err != nil {
		return err
	}
	if err := entry.OrderID.Validate(); err != nil {
		return err
	}

	dto := EntryDTO{
		ID:        entry.ID.Bytes(),
		OrderID:   entry.OrderID.Bytes(),
		Kind:      string(entry.Kind),
		Status:    entry.Status.String(),
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ClaimPending must run inside a transaction for the row locks to hold
// until MarkDispatched commits.
func (r *GormNotificationOutbox) ClaimPending(ctx context.Context, limit int) ([]ports.OutboxEntry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("dispatched_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ports.OutboxEntry, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderID, idErr := kernel.UUIDFromBytes(dto.OrderID[:])
		if idErr != nil {
			return nil, idErr
		}
		entries = append(entries, ports.OutboxEntry{
			ID:        id,
			OrderID:   orderID,
			Kind:      ports.NotificationKind(dto.Kind),
			Status:    order.ParseStatus(dto.Status),
			Note:      dto.Note,
			CreatedAt: dto.CreatedAt,
		})
	}
	return entries, nil
}

func (r *GormNotificationOutbox) MarkDispatched(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("id IN ?", raw).
		Update("dispatched_at", at.UTC()).Error
}
