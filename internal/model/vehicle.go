package model

import (
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Plate     string    `gorm:"type:varchar(15);uniqueIndex;not null"`
	Brand     string    `gorm:"type:varchar(50)"`
	Model     string    `gorm:"type:varchar(50)"`
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}
