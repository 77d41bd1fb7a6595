package order

import (
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// StatusChange is one entry of an order's audit trail.
type StatusChange struct {
	status    Status
	at        time.Time
	note      string
	updatedBy *kernel.UUID
}

func newStatusChange(status Status, at time.Time, note string, updatedBy *kernel.UUID) StatusChange {
	var actor *kernel.UUID
	if updatedBy != nil {
		id := *updatedBy
		actor = &id
	}
	return StatusChange{status: status, at: at.UTC(), note: strings.TrimSpace(note), updatedBy: actor}
}

// RestoreStatusChange rebuilds a persisted history entry.
func RestoreStatusChange(status Status, at time.Time, note string, updatedBy *kernel.UUID) StatusChange {
	return newStatusChange(status, at, note, updatedBy)
}

func (c StatusChange) Status() Status { return c.status }
func (c StatusChange) At() time.Time { return c.at }
func (c StatusChange) Note() string { return c.note }
func (c StatusChange) HasNote() bool { return c.note != "" }

// UpdatedBy returns the acting account, or nil when unknown.
func (c StatusChange) UpdatedBy() *kernel.UUID {
	if c.updatedBy == nil {
		return nil
	}
	id := *c.updatedBy
	return &id
}
