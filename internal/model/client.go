package model

import (
	"time"

	"github.com/google/uuid"
)

// ClientType values are part of the persisted-state contract.
const (
	ClientTypePersonal = "PERSONAL"
	ClientTypeEmpresa  = "EMPRESA"
	ClientTypeTemporal = "TEMPORAL"
)

// Client is a workshop customer. TEMPORAL clients are walk-ins that may only
// be invoiced for products, never for services.
type Client struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName   string    `gorm:"type:varchar(200);not null"`
	DNI        *string   `gorm:"type:varchar(20);column:dni"`
	Phone      *string   `gorm:"type:varchar(30)"`
	Email      *string   `gorm:"type:varchar(200)"`
	ClientType string    `gorm:"type:varchar(20);not null;default:'PERSONAL'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
