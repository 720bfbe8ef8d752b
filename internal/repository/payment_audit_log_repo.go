package repository

import (
	"context"

	"github.com/mrcdevv/autotech-sub000/internal/model"

	"gorm.io/gorm"
)

// PaymentAuditLogRepository is append-only: entries are never updated or
// deleted. Reads belong to external reporting, not to this service.
type PaymentAuditLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *model.PaymentAuditLog) error
}

type paymentAuditLogRepo struct{ db *gorm.DB }

func NewPaymentAuditLogRepository(db *gorm.DB) PaymentAuditLogRepository {
	return &paymentAuditLogRepo{db: db}
}

func (r *paymentAuditLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *model.PaymentAuditLog) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Create(entry).Error
}
