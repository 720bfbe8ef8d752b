package repository

import (
	"context"

	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepository interface {
	DB() *gorm.DB
	Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	// Get is a lightweight read of the invoice row (no preloads), transaction
	// aware so the reconciler sees uncommitted ledger state.
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Invoice, error)
	// FindForUpdate locks the invoice row until the surrounding transaction
	// commits. Ledger mutations go through this so concurrent payments against
	// one invoice are serialized by the database.
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Invoice, error)
	FindByRepairOrderID(ctx context.Context, repairOrderID uuid.UUID) (*model.Invoice, error)
	Search(ctx context.Context, f dto.InvoiceFilter) ([]model.Invoice, int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *invoiceRepo) Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error {
	return r.conn(ctx, tx).Create(inv).Error
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Services").Preload("Products").
		Preload("Client").Preload("Vehicle").
		First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *invoiceRepo) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.conn(ctx, tx).First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *invoiceRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	// Line items are loaded after the lock is held; they only change under the
	// same lock, so this read is consistent.
	if err := tx.Preload("Services").Preload("Products").First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) FindByRepairOrderID(ctx context.Context, repairOrderID uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Services").Preload("Products").
		Preload("Client").Preload("Vehicle").
		First(&inv, "repair_order_id = ?", repairOrderID).Error
	return &inv, err
}

func (r *invoiceRepo) Search(ctx context.Context, f dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Joins("Client").Joins("Vehicle")
	if f.ClientName != "" {
		q = q.Where(`"Client".full_name ILIKE ?`, "%"+f.ClientName+"%")
	}
	if f.Plate != "" {
		q = q.Where(`"Vehicle".plate ILIKE ?`, "%"+f.Plate+"%")
	}
	if f.Status != "" {
		q = q.Where("invoices.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Invoice
	err := q.Order("invoices.created_at DESC").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&list).Error
	return list, total, err
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	return r.conn(ctx, tx).Model(&model.Invoice{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *invoiceRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(ctx, tx).Delete(&model.Invoice{}, "id = ?", id).Error
}
