package repository

// The client, vehicle, repair-order, employee and bank-account registries are
// managed by their own modules; billing only resolves references. Each
// repository here is the minimal findById collaborator surface, plus a Create
// used by seeding and tests.

import (
	"context"

	"github.com/mrcdevv/autotech-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	Create(ctx context.Context, c *model.Client) error
}

type clientRepo struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) ClientRepository { return &clientRepo{db: db} }

func (r *clientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clientRepo) Create(ctx context.Context, c *model.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	Create(ctx context.Context, v *model.Vehicle) error
}

type vehicleRepo struct{ db *gorm.DB }

func NewVehicleRepository(db *gorm.DB) VehicleRepository { return &vehicleRepo{db: db} }

func (r *vehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var v model.Vehicle
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *vehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

type RepairOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.RepairOrder, error)
	Create(ctx context.Context, ro *model.RepairOrder) error
}

type repairOrderRepo struct{ db *gorm.DB }

func NewRepairOrderRepository(db *gorm.DB) RepairOrderRepository { return &repairOrderRepo{db: db} }

func (r *repairOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RepairOrder, error) {
	var ro model.RepairOrder
	err := r.db.WithContext(ctx).First(&ro, "id = ?", id).Error
	return &ro, err
}

func (r *repairOrderRepo) Create(ctx context.Context, ro *model.RepairOrder) error {
	return r.db.WithContext(ctx).Create(ro).Error
}

type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	Create(ctx context.Context, e *model.Employee) error
}

type employeeRepo struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository { return &employeeRepo{db: db} }

func (r *employeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

type BankAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.BankAccount, error)
	Create(ctx context.Context, b *model.BankAccount) error
}

type bankAccountRepo struct{ db *gorm.DB }

func NewBankAccountRepository(db *gorm.DB) BankAccountRepository { return &bankAccountRepo{db: db} }

func (r *bankAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BankAccount, error) {
	var b model.BankAccount
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bankAccountRepo) Create(ctx context.Context, b *model.BankAccount) error {
	return r.db.WithContext(ctx).Create(b).Error
}
