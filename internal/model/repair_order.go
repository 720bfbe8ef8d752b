package model

import (
	"time"

	"github.com/google/uuid"
)

// RepairOrder is the work order an invoice or estimate may be tied to.
// Scheduling and inspection workflows live in their own services; billing only
// needs the reference.
type RepairOrder struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehicleID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
