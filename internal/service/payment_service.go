package service

import (
	"context"
	"time"

	"github.com/mrcdevv/autotech-sub000/internal/apierror"
	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/model"
	"github.com/mrcdevv/autotech-sub000/internal/money"
	"github.com/mrcdevv/autotech-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService interface {
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]dto.PaymentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error)
	GetSummary(ctx context.Context, invoiceID uuid.UUID) (*dto.PaymentSummaryResponse, error)
	Create(ctx context.Context, invoiceID uuid.UUID, req dto.PaymentRequest) (*dto.PaymentResponse, error)
	Update(ctx context.Context, paymentID uuid.UUID, req dto.PaymentRequest) (*dto.PaymentResponse, error)
	Delete(ctx context.Context, paymentID uuid.UUID, performedBy *uuid.UUID) error
}

type paymentService struct {
	repo            repository.PaymentRepository
	invoiceRepo     repository.InvoiceRepository
	bankAccountRepo repository.BankAccountRepository
	employeeRepo    repository.EmployeeRepository
	audit           *auditTrail
	reconciler      Reconciler
}

func NewPaymentService(
	repo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	bankAccountRepo repository.BankAccountRepository,
	employeeRepo repository.EmployeeRepository,
	auditRepo repository.PaymentAuditLogRepository,
	reconciler Reconciler,
) PaymentService {
	return &paymentService{
		repo:            repo,
		invoiceRepo:     invoiceRepo,
		bankAccountRepo: bankAccountRepo,
		employeeRepo:    employeeRepo,
		audit:           newAuditTrail(auditRepo),
		reconciler:      reconciler,
	}
}

func (s *paymentService) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]dto.PaymentResponse, error) {
	if _, err := s.invoiceRepo.FindByID(ctx, invoiceID); err != nil {
		return nil, notFound(err, "Factura", invoiceID.String())
	}
	payments, err := s.repo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *paymentToResponse(&payments[i]))
	}
	return out, nil
}

func (s *paymentService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	p, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, notFound(err, "Pago", id.String())
	}
	return paymentToResponse(p), nil
}

// GetSummary recomputes everything from authoritative state: the breakdown
// from the invoice's line items, the paid total from the live ledger. Only the
// invoice's total column is trusted as a cached value.
func (s *paymentService) GetSummary(ctx context.Context, invoiceID uuid.UUID) (*dto.PaymentSummaryResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, notFound(err, "Factura", invoiceID.String())
	}
	paid, err := s.repo.SumAmountByInvoiceID(ctx, nil, invoiceID)
	if err != nil {
		return nil, err
	}
	return summaryFor(inv, paid), nil
}

func (s *paymentService) Create(ctx context.Context, invoiceID uuid.UUID, req dto.PaymentRequest) (*dto.PaymentResponse, error) {
	paymentDate, bankAccountID, employeeID, err := s.resolveRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	var created model.Payment
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Lock first: the remaining balance is recomputed under the lock so two
		// concurrent creates against one invoice serialize at the database.
		inv, err := s.lockInvoice(ctx, tx, invoiceID)
		if err != nil {
			return notFound(err, "Factura", invoiceID.String())
		}
		paid, err := s.repo.SumAmountByInvoiceID(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		summary := summaryFor(inv, paid)

		if summary.Remaining.LessThanOrEqual(decimal.Zero) {
			return apierror.NewBusiness("La factura ya se encuentra completamente pagada")
		}
		if req.Amount.GreaterThan(summary.Remaining) {
			return apierror.NewBusinessf("El monto del pago no puede superar el restante por pagar ($%s)", summary.Remaining.StringFixed(2))
		}

		created = model.Payment{
			InvoiceID:              invoiceID,
			PaymentDate:            paymentDate,
			Amount:                 req.Amount,
			PayerName:              req.PayerName,
			PaymentType:            req.PaymentType,
			BankAccountID:          bankAccountID,
			RegisteredByEmployeeID: employeeID,
		}
		if err := s.repo.Create(ctx, tx, &created); err != nil {
			return err
		}
		if err := s.audit.record(ctx, tx, model.AuditActionCreated, &created.ID, nil, &created, employeeID); err != nil {
			return err
		}
		return s.reconciler.ReconcileTx(ctx, tx, invoiceID)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("payment_id", created.ID.String()).
		Str("invoice_id", invoiceID.String()).
		Msg("pago registrado")
	return s.GetByID(ctx, created.ID)
}

func (s *paymentService) Update(ctx context.Context, paymentID uuid.UUID, req dto.PaymentRequest) (*dto.PaymentResponse, error) {
	paymentDate, bankAccountID, employeeID, err := s.resolveRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// First read resolves the owning invoice; the payment is re-read after
		// the invoice lock is held so concurrent edits serialize.
		preread, err := s.repo.FindByID(ctx, tx, paymentID)
		if err != nil {
			return notFound(err, "Pago", paymentID.String())
		}
		invoiceID := preread.InvoiceID

		inv, err := s.lockInvoice(ctx, tx, invoiceID)
		if err != nil {
			return notFound(err, "Factura", invoiceID.String())
		}
		existing, err := s.repo.FindByID(ctx, tx, paymentID)
		if err != nil {
			return notFound(err, "Pago", paymentID.String())
		}
		oldSnapshot := *existing

		paid, err := s.repo.SumAmountByInvoiceID(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		summary := summaryFor(inv, paid)

		// As if this payment were absent: its current amount frees up.
		remainingWithoutThis := summary.Remaining.Add(existing.Amount)
		if req.Amount.GreaterThan(remainingWithoutThis) {
			return apierror.NewBusinessf("El monto del pago no puede superar el restante por pagar ($%s)", remainingWithoutThis.StringFixed(2))
		}

		existing.PaymentDate = paymentDate
		existing.Amount = req.Amount
		existing.PayerName = req.PayerName
		existing.PaymentType = req.PaymentType
		if req.PaymentType == model.PaymentTypeCuentaBancaria {
			existing.BankAccountID = bankAccountID
		} else {
			existing.BankAccountID = nil
		}
		existing.BankAccount = nil
		existing.RegisteredByEmployee = nil

		if err := s.repo.Update(ctx, tx, existing); err != nil {
			return err
		}
		if err := s.audit.record(ctx, tx, model.AuditActionModified, &existing.ID, &oldSnapshot, existing, employeeID); err != nil {
			return err
		}
		// A reduced amount can flip a PAGADA invoice back to PENDIENTE.
		return s.reconciler.ReconcileTx(ctx, tx, invoiceID)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("payment_id", paymentID.String()).Msg("pago actualizado")
	return s.GetByID(ctx, paymentID)
}

func (s *paymentService) Delete(ctx context.Context, paymentID uuid.UUID, performedBy *uuid.UUID) error {
	if performedBy != nil {
		if _, err := s.employeeRepo.FindByID(ctx, *performedBy); err != nil {
			return notFound(err, "Empleado", performedBy.String())
		}
	}

	var invoiceID uuid.UUID
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		preread, err := s.repo.FindByID(ctx, tx, paymentID)
		if err != nil {
			return notFound(err, "Pago", paymentID.String())
		}
		invoiceID = preread.InvoiceID

		if _, err := s.lockInvoice(ctx, tx, invoiceID); err != nil {
			return notFound(err, "Factura", invoiceID.String())
		}
		existing, err := s.repo.FindByID(ctx, tx, paymentID)
		if err != nil {
			return notFound(err, "Pago", paymentID.String())
		}

		// The audit entry is written before the row disappears: it captures
		// state that will no longer exist, and carries no payment reference.
		if err := s.audit.record(ctx, tx, model.AuditActionDeleted, nil, existing, nil, performedBy); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, paymentID); err != nil {
			return err
		}
		return s.reconciler.ReconcileTx(ctx, tx, invoiceID)
	})
	if txErr != nil {
		return txErr
	}

	log.Info().
		Str("payment_id", paymentID.String()).
		Str("invoice_id", invoiceID.String()).
		Msg("pago eliminado")
	return nil
}

// lockInvoice acquires the per-invoice write lock inside a transaction, or
// falls back to a plain read in unit-test mode (nil tx).
func (s *paymentService) lockInvoice(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) (*model.Invoice, error) {
	if tx != nil {
		return s.invoiceRepo.FindForUpdate(tx, invoiceID)
	}
	return s.invoiceRepo.FindByID(ctx, invoiceID)
}

// resolveRequest validates the bank-account rule and resolves the optional
// references before any write begins.
func (s *paymentService) resolveRequest(ctx context.Context, req dto.PaymentRequest) (time.Time, *uuid.UUID, *uuid.UUID, error) {
	paymentDate, err := time.Parse(dateLayout, req.PaymentDate)
	if err != nil {
		return time.Time{}, nil, nil, apierror.NewBusiness("Fecha de pago inválida: " + req.PaymentDate)
	}

	bankAccountID, err := parseOptionalID(req.BankAccountID)
	if err != nil {
		return time.Time{}, nil, nil, err
	}
	if req.PaymentType == model.PaymentTypeCuentaBancaria && bankAccountID == nil {
		return time.Time{}, nil, nil, apierror.NewBusiness("Se debe seleccionar una cuenta bancaria para pagos de tipo CUENTA_BANCARIA")
	}
	if bankAccountID != nil {
		if _, err := s.bankAccountRepo.FindByID(ctx, *bankAccountID); err != nil {
			return time.Time{}, nil, nil, notFound(err, "Cuenta bancaria", bankAccountID.String())
		}
	}

	employeeID, err := parseOptionalID(req.RegisteredByEmployeeID)
	if err != nil {
		return time.Time{}, nil, nil, err
	}
	if employeeID != nil {
		if _, err := s.employeeRepo.FindByID(ctx, *employeeID); err != nil {
			return time.Time{}, nil, nil, notFound(err, "Empleado", employeeID.String())
		}
	}
	return paymentDate, bankAccountID, employeeID, nil
}

func summaryFor(inv *model.Invoice, paid decimal.Decimal) *dto.PaymentSummaryResponse {
	b := money.Calculate(
		invoiceServiceLines(inv.Services),
		invoiceProductLines(inv.Products),
		inv.DiscountPercentage,
		inv.TaxPercentage,
	)
	remaining := inv.Total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return &dto.PaymentSummaryResponse{
		TotalServices:  b.ServicesTotal,
		TotalProducts:  b.ProductsTotal,
		DiscountAmount: b.DiscountAmount,
		TaxAmount:      b.TaxAmount,
		Total:          inv.Total,
		TotalPaid:      paid,
		Remaining:      remaining,
	}
}

func paymentToResponse(p *model.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:                     p.ID.String(),
		InvoiceID:              p.InvoiceID.String(),
		PaymentDate:            p.PaymentDate.Format(dateLayout),
		Amount:                 p.Amount,
		PayerName:              p.PayerName,
		PaymentType:            p.PaymentType,
		BankAccountID:          idString(p.BankAccountID),
		RegisteredByEmployeeID: idString(p.RegisteredByEmployeeID),
		CreatedAt:              formatTime(p.CreatedAt),
		UpdatedAt:              formatTime(p.UpdatedAt),
	}
}
