package service

import (
	"context"

	"github.com/mrcdevv/autotech-sub000/internal/model"
	"github.com/mrcdevv/autotech-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reconciler is the single authority over invoice status under normal
// operation. After every ledger mutation it recomputes paid-vs-total from
// authoritative state — never from a value computed earlier in the request —
// and flips the invoice between PENDIENTE and PAGADA. It is idempotent: a
// second call with no intervening ledger change writes the same status.
type Reconciler interface {
	ReconcileTx(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) error
}

type reconciler struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

func NewReconciler(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) Reconciler {
	return &reconciler{invoiceRepo: invoiceRepo, paymentRepo: paymentRepo}
}

func (r *reconciler) ReconcileTx(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) error {
	inv, err := r.invoiceRepo.Get(ctx, tx, invoiceID)
	if err != nil {
		return notFound(err, "Factura", invoiceID.String())
	}
	paid, err := r.paymentRepo.SumAmountByInvoiceID(ctx, tx, invoiceID)
	if err != nil {
		return err
	}

	status := model.InvoiceStatusPendiente
	if inv.Total.Sub(paid).LessThanOrEqual(decimal.Zero) {
		status = model.InvoiceStatusPagada
	}
	if status != inv.Status {
		log.Info().
			Str("invoice_id", invoiceID.String()).
			Str("status", status).
			Msg("estado de factura reconciliado")
	}
	return r.invoiceRepo.UpdateStatus(ctx, tx, invoiceID, status)
}
