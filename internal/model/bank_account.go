package model

import (
	"time"

	"github.com/google/uuid"
)

type BankAccount struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BankName      string    `gorm:"type:varchar(100);not null"`
	AccountNumber string    `gorm:"type:varchar(50);not null"`
	Holder        *string   `gorm:"type:varchar(200)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
