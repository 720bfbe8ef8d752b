package repository

import (
	"context"

	"github.com/mrcdevv/autotech-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	DB() *gorm.DB
	Create(ctx context.Context, tx *gorm.DB, p *model.Payment) error
	FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Payment, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]model.Payment, error)
	// SumAmountByInvoiceID is the ledger's running total. Callers inside a
	// mutation pass their transaction so the sum reflects uncommitted rows.
	SumAmountByInvoiceID(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error)
	CountByInvoiceID(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, p *model.Payment) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) DB() *gorm.DB { return r.db }

func (r *paymentRepo) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *paymentRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Payment) error {
	return r.conn(ctx, tx).Omit(clause.Associations).Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.conn(ctx, tx).
		Preload("BankAccount").Preload("RegisteredByEmployee").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *paymentRepo) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]model.Payment, error) {
	var list []model.Payment
	err := r.db.WithContext(ctx).
		Preload("BankAccount").Preload("RegisteredByEmployee").
		Where("invoice_id = ?", invoiceID).
		Order("payment_date DESC").
		Find(&list).Error
	return list, err
}

func (r *paymentRepo) SumAmountByInvoiceID(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.conn(ctx, tx).Model(&model.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *paymentRepo) CountByInvoiceID(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) (int64, error) {
	var n int64
	err := r.conn(ctx, tx).Model(&model.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Count(&n).Error
	return n, err
}

func (r *paymentRepo) Update(ctx context.Context, tx *gorm.DB, p *model.Payment) error {
	return r.conn(ctx, tx).Omit(clause.Associations).Save(p).Error
}

func (r *paymentRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(ctx, tx).Delete(&model.Payment{}, "id = ?", id).Error
}
