package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions for payment mutations.
const (
	AuditActionCreated  = "CREATED"
	AuditActionModified = "MODIFIED"
	AuditActionDeleted  = "DELETED"
)

// PaymentAuditLog is an append-only record of a payment mutation. Entries are
// never updated or deleted and survive the deletion of the payment they
// describe (PaymentID is nulled, the snapshots remain).
//
// OldValues / NewValues hold JSON snapshots with a fixed shape:
// {paymentDate, amount, payerName, paymentType, bankAccountId}.
// OldValues is null for CREATED, NewValues is null for DELETED.
type PaymentAuditLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaymentID *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:SET NULL"`
	Action    string     `gorm:"type:varchar(20);not null"`
	OldValues *string    `gorm:"type:text"`
	NewValues *string    `gorm:"type:text"`

	PerformedByEmployeeID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
}
