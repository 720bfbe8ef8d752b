package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/model"
	"github.com/mrcdevv/autotech-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Fixture ───────────────────────────────────────────────────────────────────

type paymentFixture struct {
	svc          service.PaymentService
	repo         *stubPaymentRepo
	invoiceRepo  *stubInvoiceRepo
	bankAccounts *stubBankAccountRepo
	employees    *stubEmployeeRepo
	audit        *stubAuditRepo
}

func buildPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		repo:         newStubPaymentRepo(),
		invoiceRepo:  newStubInvoiceRepo(),
		bankAccounts: newStubBankAccountRepo(),
		employees:    newStubEmployeeRepo(),
		audit:        &stubAuditRepo{},
	}
	reconciler := service.NewReconciler(f.invoiceRepo, f.repo)
	f.svc = service.NewPaymentService(f.repo, f.invoiceRepo, f.bankAccounts, f.employees, f.audit, reconciler)
	return f
}

// seedInvoice stores a PENDIENTE invoice whose cached total matches its single
// service line: services=1000+products=200, 10% discount, 21% tax → 1306.80.
func (f *paymentFixture) seedInvoice(t *testing.T) *model.Invoice {
	t.Helper()
	inv := &model.Invoice{
		ClientID:           uuid.New(),
		Status:             model.InvoiceStatusPendiente,
		DiscountPercentage: decimal.NewFromInt(10),
		TaxPercentage:      decimal.NewFromInt(21),
		Total:              decimal.RequireFromString("1306.80"),
		Services:           []model.InvoiceServiceItem{{ServiceName: "Motor", Price: decimal.NewFromInt(1000)}},
		Products:           []model.InvoiceProduct{{ProductName: "Junta", Quantity: 1, UnitPrice: decimal.NewFromInt(200), TotalPrice: decimal.NewFromInt(200)}},
	}
	require.NoError(t, f.invoiceRepo.Create(context.Background(), nil, inv))
	return inv
}

func paymentReq(amount string) dto.PaymentRequest {
	return dto.PaymentRequest{
		PaymentDate: "2026-08-20",
		Amount:      decimal.RequireFromString(amount),
		PaymentType: model.PaymentTypeEfectivo,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarPago_Parcial(t *testing.T) {
	f := buildPaymentFixture()
	inv := f.seedInvoice(t)

	resp, err := f.svc.Create(context.Background(), inv.ID, paymentReq("300"))
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "2026-08-20", resp.PaymentDate)

	// Partial payment leaves the invoice PENDIENTE
	stored, err := f.invoiceRepo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPendiente, stored.Status)

	summary, err := f.svc.GetSummary(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(300)))
	assert.True(t, summary.Remaining.Equal(decimal.RequireFromString("1006.80")), "remaining = %s", summary.Remaining)
	assert.True(t, summary.DiscountAmount.Equal(decimal.NewFromInt(120)))
	assert.True(t, summary.TaxAmount.Equal(decimal.RequireFromString("226.80")))
}

func TestRegistrarPago_CompletoReconcilia(t *testing.T) {
	f := buildPaymentFixture()
	inv := f.seedInvoice(t)

	_, err := f.svc.Create(context.Background(), inv.ID, paymentReq("1306.80"))
	require.NoError(t, err)

	stored, err := f.invoiceRepo.FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPagada, stored.Status)

	summary, err := f.svc.GetSummary(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, summary.Remaining.IsZero())

	// A second payment against a settled invoice is refused
	_, err = f.svc.Create(context.Background(), inv.ID, paymentReq("1"))
	assert.ErrorContains(t, err, "La factura ya se encuentra completamente pagada")
}

func TestRegistrarPago_SobrepagoImposible(t *testing.T) {
	f := buildPaymentFixture()
	inv := f.seedInvoice(t)

	_, err := f.svc.Create(context.Background(), inv.ID, paymentReq("1000"))
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), inv.ID, paymentReq("306.81"))
	assert.ErrorContains(t, err, "El monto del pago no puede superar el restante por pagar ($306.80)")

	// Ledger unchanged after the refusal
	summary, err := f.svc.GetSummary(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(1000)))

	// Exactly the remaining amount settles it
	_, err = f.svc.Create(context.Background(), inv.ID, paymentReq("306.80"))
	require.NoError(t, err)
	stored, _ := f.invoiceRepo.FindByID(context.Background(), inv.ID)
	assert.Equal(t, model.InvoiceStatusPagada, stored.Status)
}

func TestRegistrarPago_CuentaBancariaObligatoria(t *testing.T) {
	f := buildPaymentFixture()
	inv := f.seedInvoice(t)

	req := paymentReq("100")
	req.PaymentType = model.PaymentTypeCuentaBancaria
	_, err := f.svc.Create(context.Background(), inv.ID, req)
	assert.ErrorContains(t, err, "Se debe seleccionar una cuenta bancaria para pagos de tipo CUENTA_BANCARIA")

	// Unknown bank account is a not-found
	missing := uuid.NewString()
	req.BankAccountID = &missing
	_, err = f.svc.Create(context.Background(), inv.ID, req)
	assert.ErrorContains(t, err, "no encontrado")

	// With a real account the payment goes through
	acct := &model.BankAccount{BankName: "Banco Nación", AccountNumber: "000123"}
	require.NoError(t, f.bankAccounts.Create(context.Background(), acct))
	acctID := acct.ID.String()
	req.BankAccountID = &acctID
	resp, err := f.svc.Create(context.Background(), inv.ID, req)
	require.NoError(t, err)
	require.NotNil(t, resp.BankAccountID)
	assert.Equal(t, acctID, *resp.BankAccountID)
}

func TestActualizarPago_SaldoSinElPago(t *testing.T) {
	f := buildPaymentFixture()
	inv := f.seedInvoice(t)

	created, err := f.svc.Create(context.Background(), inv.ID, paymentReq("1306.80"))
	require.NoError(t, err)
	paymentID := uuid.MustParse(created.ID)

	// Raising beyond the total is impossible even though remaining is 0:
	// the payment's own amount frees up first.
	_, err = f.svc.Update(context.Background(), paymentID, paymentReq("1306.81"))
	assert.ErrorContains(t, err, "El monto del pago no puede superar el restante por pagar ($1306.80)")

	// Lowering the amount reopens the invoice
	resp, err := f.svc.Update(context.Background(), paymentID, paymentReq("1000"))
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(1000)))

	stored, _ := f.invoiceRepo.FindByID(context.Background(), inv.ID)
	assert.Equal(t, model.InvoiceStatusPendiente, stored.Status)

	// Back up to exactly the total settles it again
	_, err = f.svc.Update(context.Background(), paymentID, paymentReq("1306.80"))
	require.NoError(t, err)
	stored, _ = f.invoiceRepo.FindByID(context.Background(), inv.ID)
	assert.Equal(t, model.InvoiceStatusPagada, stored.Status)
}

func TestEliminarPago_ReabreFactura(t *testing.T) {
	f := buildPaymentFixture()
	inv := f.seedInvoice(t)

	created, err := f.svc.Create(context.Background(), inv.ID, paymentReq("1306.80"))
	require.NoError(t, err)
	stored, _ := f.invoiceRepo.FindByID(context.Background(), inv.ID)
	require.Equal(t, model.InvoiceStatusPagada, stored.Status)

	require.NoError(t, f.svc.Delete(context.Background(), uuid.MustParse(created.ID), nil))

	stored, _ = f.invoiceRepo.FindByID(context.Background(), inv.ID)
	assert.Equal(t, model.InvoiceStatusPendiente, stored.Status)

	_, err = f.svc.GetByID(context.Background(), uuid.MustParse(created.ID))
	assert.ErrorContains(t, err, "no encontrado")
}

func TestAuditoria_UnaEntradaPorMutacion(t *testing.T) {
	f := buildPaymentFixture()
	inv := f.seedInvoice(t)

	created, err := f.svc.Create(context.Background(), inv.ID, paymentReq("500"))
	require.NoError(t, err)
	paymentID := uuid.MustParse(created.ID)

	_, err = f.svc.Update(context.Background(), paymentID, paymentReq("700"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), paymentID, nil))

	require.Len(t, f.audit.entries, 3)

	createdEntry := f.audit.entries[0]
	assert.Equal(t, model.AuditActionCreated, createdEntry.Action)
	require.NotNil(t, createdEntry.PaymentID)
	assert.Equal(t, paymentID, *createdEntry.PaymentID)
	assert.Nil(t, createdEntry.OldValues)
	require.NotNil(t, createdEntry.NewValues)

	modifiedEntry := f.audit.entries[1]
	assert.Equal(t, model.AuditActionModified, modifiedEntry.Action)
	require.NotNil(t, modifiedEntry.OldValues)
	require.NotNil(t, modifiedEntry.NewValues)

	// The deletion entry carries no payment reference; the snapshots are the
	// only surviving record.
	deletedEntry := f.audit.entries[2]
	assert.Equal(t, model.AuditActionDeleted, deletedEntry.Action)
	assert.Nil(t, deletedEntry.PaymentID)
	require.NotNil(t, deletedEntry.OldValues)
	assert.Nil(t, deletedEntry.NewValues)

	// Snapshot shape is fixed: {paymentDate, amount, payerName, paymentType, bankAccountId}
	var snap map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(*deletedEntry.OldValues), &snap))
	assert.Equal(t, "2026-08-20", snap["paymentDate"])
	assert.Equal(t, "700", snap["amount"])
	assert.Contains(t, snap, "payerName")
	assert.Equal(t, model.PaymentTypeEfectivo, snap["paymentType"])
	assert.Contains(t, snap, "bankAccountId")
}

func TestRegistrarPago_FacturaInexistente(t *testing.T) {
	f := buildPaymentFixture()

	_, err := f.svc.Create(context.Background(), uuid.New(), paymentReq("100"))
	assert.ErrorContains(t, err, "no encontrado")
}

func TestResumen_RecalculaDesdeItems(t *testing.T) {
	f := buildPaymentFixture()
	inv := f.seedInvoice(t)

	summary, err := f.svc.GetSummary(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, summary.TotalServices.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.TotalProducts.Equal(decimal.NewFromInt(200)))
	assert.True(t, summary.Total.Equal(inv.Total))
	assert.True(t, summary.TotalPaid.IsZero())
	assert.True(t, summary.Remaining.Equal(inv.Total))
}
