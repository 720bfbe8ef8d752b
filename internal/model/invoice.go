package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice statuses. Status is derived from the payment ledger by the
// reconciler; PAGADA means remaining balance is zero.
const (
	InvoiceStatusPendiente = "PENDIENTE"
	InvoiceStatusPagada    = "PAGADA"
)

// Invoice is the billable document. EstimateID is a weak back-reference:
// deleting the estimate does not touch the invoice, the relation may dangle.
type Invoice struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID           uuid.UUID    `gorm:"type:uuid;index;not null"`
	Client             *Client      `gorm:"foreignKey:ClientID"`
	VehicleID          *uuid.UUID   `gorm:"type:uuid;index"`
	Vehicle            *Vehicle     `gorm:"foreignKey:VehicleID"`
	RepairOrderID      *uuid.UUID   `gorm:"type:uuid;index"`
	RepairOrder        *RepairOrder `gorm:"foreignKey:RepairOrderID"`
	EstimateID         *uuid.UUID   `gorm:"type:uuid;index"`
	Status             string       `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TaxPercentage      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	// Total is cached at save time; it must always equal the calculator output
	// for the current line items and percentages.
	Total decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Services []InvoiceServiceItem `gorm:"constraint:OnDelete:CASCADE"`
	Products []InvoiceProduct     `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvoiceServiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceName string          `gorm:"type:varchar(200);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

type InvoiceProduct struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
