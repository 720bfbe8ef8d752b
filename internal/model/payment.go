package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment types. CUENTA_BANCARIA requires a bank account reference.
const (
	PaymentTypeEfectivo       = "EFECTIVO"
	PaymentTypeCuentaBancaria = "CUENTA_BANCARIA"
)

// Payment is one row of an invoice's ledger. Mutable until deleted; every
// mutation is mirrored into the audit log.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	PaymentDate time.Time       `gorm:"type:date;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PayerName   *string         `gorm:"type:varchar(200)"`
	PaymentType string          `gorm:"type:varchar(20);not null"`

	BankAccountID *uuid.UUID   `gorm:"type:uuid"`
	BankAccount   *BankAccount `gorm:"foreignKey:BankAccountID"`

	RegisteredByEmployeeID *uuid.UUID `gorm:"type:uuid"`
	RegisteredByEmployee   *Employee  `gorm:"foreignKey:RegisteredByEmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
