package repository

import (
	"context"

	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EstimateRepository interface {
	// DB exposes the underlying connection so services can open transactions.
	DB() *gorm.DB
	Create(ctx context.Context, tx *gorm.DB, e *model.Estimate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Estimate, error)
	// FindForUpdate locks the estimate row until the surrounding transaction
	// commits, so the status guard and the write it protects see the same row.
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Estimate, error)
	FindByRepairOrderID(ctx context.Context, repairOrderID uuid.UUID) (*model.Estimate, error)
	Search(ctx context.Context, f dto.EstimateFilter) ([]model.Estimate, int64, error)
	// Update persists the document row only; line items go through ReplaceItems.
	Update(ctx context.Context, tx *gorm.DB, e *model.Estimate) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	// ReplaceItems implements the "delete all, re-add" ownership semantics.
	ReplaceItems(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID,
		services []model.EstimateServiceItem, products []model.EstimateProduct) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type estimateRepo struct{ db *gorm.DB }

func NewEstimateRepository(db *gorm.DB) EstimateRepository {
	return &estimateRepo{db: db}
}

func (r *estimateRepo) DB() *gorm.DB { return r.db }

func (r *estimateRepo) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *estimateRepo) Create(ctx context.Context, tx *gorm.DB, e *model.Estimate) error {
	// Line items present in the struct are inserted in the same statement batch.
	return r.conn(ctx, tx).Create(e).Error
}

func (r *estimateRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Estimate, error) {
	var e model.Estimate
	err := r.db.WithContext(ctx).
		Preload("Services").Preload("Products").
		Preload("Client").Preload("Vehicle").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *estimateRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Estimate, error) {
	var e model.Estimate
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *estimateRepo) FindByRepairOrderID(ctx context.Context, repairOrderID uuid.UUID) (*model.Estimate, error) {
	var e model.Estimate
	err := r.db.WithContext(ctx).
		Preload("Services").Preload("Products").
		Preload("Client").Preload("Vehicle").
		First(&e, "repair_order_id = ?", repairOrderID).Error
	return &e, err
}

func (r *estimateRepo) Search(ctx context.Context, f dto.EstimateFilter) ([]model.Estimate, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Estimate{}).
		Joins("Client").Joins("Vehicle")
	if f.ClientName != "" {
		q = q.Where(`"Client".full_name ILIKE ?`, "%"+f.ClientName+"%")
	}
	if f.Plate != "" {
		q = q.Where(`"Vehicle".plate ILIKE ?`, "%"+f.Plate+"%")
	}
	if f.Status != "" {
		q = q.Where("estimates.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Estimate
	err := q.Order("estimates.created_at DESC").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&list).Error
	return list, total, err
}

func (r *estimateRepo) Update(ctx context.Context, tx *gorm.DB, e *model.Estimate) error {
	return r.conn(ctx, tx).Omit(clause.Associations).Save(e).Error
}

func (r *estimateRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	return r.conn(ctx, tx).Model(&model.Estimate{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *estimateRepo) ReplaceItems(ctx context.Context, tx *gorm.DB, estimateID uuid.UUID,
	services []model.EstimateServiceItem, products []model.EstimateProduct) error {
	db := r.conn(ctx, tx)
	if err := db.Where("estimate_id = ?", estimateID).Delete(&model.EstimateServiceItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("estimate_id = ?", estimateID).Delete(&model.EstimateProduct{}).Error; err != nil {
		return err
	}
	if len(services) > 0 {
		if err := db.Create(&services).Error; err != nil {
			return err
		}
	}
	if len(products) > 0 {
		if err := db.Create(&products).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *estimateRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(ctx, tx).Delete(&model.Estimate{}, "id = ?", id).Error
}
