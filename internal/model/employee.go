package model

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string    `gorm:"type:varchar(200);not null"`
	Role      string    `gorm:"type:varchar(30)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
