package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estimate statuses. PENDIENTE is the only editable state; ACEPTADO and
// RECHAZADO are terminal. These strings are persisted and must not be renamed
// without a migration.
const (
	EstimateStatusPendiente = "PENDIENTE"
	EstimateStatusAceptado  = "ACEPTADO"
	EstimateStatusRechazado = "RECHAZADO"
)

// Estimate is a customer-facing quote. Total is a cached derived value: every
// mutation path recomputes it atomically with the line-item change.
type Estimate struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	Client             *Client    `gorm:"foreignKey:ClientID"`
	VehicleID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	Vehicle            *Vehicle   `gorm:"foreignKey:VehicleID"`
	RepairOrderID      *uuid.UUID `gorm:"type:uuid;index"`
	Status             string     `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TaxPercentage      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Total              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Owned child collections: edits replace them wholesale, deletion cascades.
	Services []EstimateServiceItem `gorm:"constraint:OnDelete:CASCADE"`
	Products []EstimateProduct     `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EstimateServiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstimateID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceName string          `gorm:"type:varchar(200);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

type EstimateProduct struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EstimateID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// TotalPrice = Quantity × UnitPrice, fixed at creation time.
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
