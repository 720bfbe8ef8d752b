package service_test

import (
	"context"

	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/model"
	"github.com/mrcdevv/autotech-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. DB() returns nil so the services run their
// transaction closures with a nil tx.

type stubEstimateRepo struct {
	estimates map[uuid.UUID]*model.Estimate
}

func newStubEstimateRepo() *stubEstimateRepo {
	return &stubEstimateRepo{estimates: make(map[uuid.UUID]*model.Estimate)}
}

func (r *stubEstimateRepo) DB() *gorm.DB { return nil }

func (r *stubEstimateRepo) Create(_ context.Context, _ *gorm.DB, e *model.Estimate) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	for i := range e.Services {
		if e.Services[i].ID == uuid.Nil {
			e.Services[i].ID = uuid.New()
		}
		e.Services[i].EstimateID = e.ID
	}
	for i := range e.Products {
		if e.Products[i].ID == uuid.Nil {
			e.Products[i].ID = uuid.New()
		}
		e.Products[i].EstimateID = e.ID
	}
	r.estimates[e.ID] = e
	return nil
}

// FindByID returns a copy: callers mutate the result before persisting it
// through Update, like they would with a row scanned from the database.
func (r *stubEstimateRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Estimate, error) {
	e, ok := r.estimates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEstimateRepo) FindForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Estimate, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubEstimateRepo) FindByRepairOrderID(_ context.Context, repairOrderID uuid.UUID) (*model.Estimate, error) {
	for _, e := range r.estimates {
		if e.RepairOrderID != nil && *e.RepairOrderID == repairOrderID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEstimateRepo) Search(_ context.Context, f dto.EstimateFilter) ([]model.Estimate, int64, error) {
	var out []model.Estimate
	for _, e := range r.estimates {
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubEstimateRepo) Update(_ context.Context, _ *gorm.DB, e *model.Estimate) error {
	stored, ok := r.estimates[e.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	items, products := stored.Services, stored.Products
	*stored = *e
	// Update persists the row only; item collections stay as ReplaceItems left them.
	stored.Services, stored.Products = items, products
	return nil
}

func (r *stubEstimateRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, status string) error {
	e, ok := r.estimates[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Status = status
	return nil
}

func (r *stubEstimateRepo) ReplaceItems(_ context.Context, _ *gorm.DB, estimateID uuid.UUID,
	services []model.EstimateServiceItem, products []model.EstimateProduct) error {
	e, ok := r.estimates[estimateID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range services {
		if services[i].ID == uuid.Nil {
			services[i].ID = uuid.New()
		}
	}
	for i := range products {
		if products[i].ID == uuid.Nil {
			products[i].ID = uuid.New()
		}
	}
	e.Services, e.Products = services, products
	return nil
}

func (r *stubEstimateRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.estimates, id)
	return nil
}

var _ repository.EstimateRepository = (*stubEstimateRepo)(nil)

type stubInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]*model.Invoice)}
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

func (r *stubInvoiceRepo) Create(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	for i := range inv.Services {
		if inv.Services[i].ID == uuid.Nil {
			inv.Services[i].ID = uuid.New()
		}
		inv.Services[i].InvoiceID = inv.ID
	}
	for i := range inv.Products {
		if inv.Products[i].ID == uuid.Nil {
			inv.Products[i].ID = uuid.New()
		}
		inv.Products[i].InvoiceID = inv.ID
	}
	r.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *stubInvoiceRepo) Get(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Invoice, error) {
	return r.FindByID(ctx, id)
}

func (r *stubInvoiceRepo) FindForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Invoice, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubInvoiceRepo) FindByRepairOrderID(_ context.Context, repairOrderID uuid.UUID) (*model.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.RepairOrderID != nil && *inv.RepairOrderID == repairOrderID {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInvoiceRepo) Search(_ context.Context, f dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, status string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.Status = status
	return nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

type stubPaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[uuid.UUID]*model.Payment)}
}

func (r *stubPaymentRepo) DB() *gorm.DB { return nil }

func (r *stubPaymentRepo) Create(_ context.Context, _ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	clone := *p
	r.payments[p.ID] = &clone
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPaymentRepo) FindByInvoiceID(_ context.Context, invoiceID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) SumAmountByInvoiceID(_ context.Context, _ *gorm.DB, invoiceID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *stubPaymentRepo) CountByInvoiceID(_ context.Context, _ *gorm.DB, invoiceID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			n++
		}
	}
	return n, nil
}

func (r *stubPaymentRepo) Update(_ context.Context, _ *gorm.DB, p *model.Payment) error {
	if _, ok := r.payments[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *p
	r.payments[p.ID] = &clone
	return nil
}

func (r *stubPaymentRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

type stubAuditRepo struct {
	entries []model.PaymentAuditLog
}

func (r *stubAuditRepo) Create(_ context.Context, _ *gorm.DB, entry *model.PaymentAuditLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

var _ repository.PaymentAuditLogRepository = (*stubAuditRepo)(nil)

// ── Lookup stubs ──────────────────────────────────────────────────────────────

type stubClientRepo struct{ clients map[uuid.UUID]*model.Client }

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

type stubVehicleRepo struct{ vehicles map[uuid.UUID]*model.Vehicle }

func newStubVehicleRepo() *stubVehicleRepo {
	return &stubVehicleRepo{vehicles: make(map[uuid.UUID]*model.Vehicle)}
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVehicleRepo) Create(_ context.Context, v *model.Vehicle) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.vehicles[v.ID] = v
	return nil
}

var _ repository.VehicleRepository = (*stubVehicleRepo)(nil)

type stubRepairOrderRepo struct{ orders map[uuid.UUID]*model.RepairOrder }

func newStubRepairOrderRepo() *stubRepairOrderRepo {
	return &stubRepairOrderRepo{orders: make(map[uuid.UUID]*model.RepairOrder)}
}

func (r *stubRepairOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RepairOrder, error) {
	ro, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ro, nil
}

func (r *stubRepairOrderRepo) Create(_ context.Context, ro *model.RepairOrder) error {
	if ro.ID == uuid.Nil {
		ro.ID = uuid.New()
	}
	r.orders[ro.ID] = ro
	return nil
}

var _ repository.RepairOrderRepository = (*stubRepairOrderRepo)(nil)

type stubEmployeeRepo struct{ employees map[uuid.UUID]*model.Employee }

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[uuid.UUID]*model.Employee)}
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.employees[e.ID] = e
	return nil
}

var _ repository.EmployeeRepository = (*stubEmployeeRepo)(nil)

type stubBankAccountRepo struct{ accounts map[uuid.UUID]*model.BankAccount }

func newStubBankAccountRepo() *stubBankAccountRepo {
	return &stubBankAccountRepo{accounts: make(map[uuid.UUID]*model.BankAccount)}
}

func (r *stubBankAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*model.BankAccount, error) {
	b, ok := r.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBankAccountRepo) Create(_ context.Context, b *model.BankAccount) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.accounts[b.ID] = b
	return nil
}

var _ repository.BankAccountRepository = (*stubBankAccountRepo)(nil)
