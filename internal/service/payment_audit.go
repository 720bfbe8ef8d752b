package service

import (
	"context"
	"encoding/json"

	"github.com/mrcdevv/autotech-sub000/internal/model"
	"github.com/mrcdevv/autotech-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// paymentSnapshot is the fixed audit snapshot shape. Field order and names are
// part of the stored contract: historical diffs stay comparable across entries
// even if the payment schema evolves.
type paymentSnapshot struct {
	PaymentDate string `json:"paymentDate"`
	Amount      string `json:"amount"`
	PayerName   string `json:"payerName"`
	PaymentType string `json:"paymentType"`
	BankAccount string `json:"bankAccountId"`
}

// auditTrail writes the append-only payment mutation log. A snapshot that
// cannot be serialized degrades to "{}" instead of aborting the financial
// operation; the degraded entry stays distinguishable from a genuine
// "no prior value" (which is stored as NULL).
type auditTrail struct {
	repo repository.PaymentAuditLogRepository
}

func newAuditTrail(repo repository.PaymentAuditLogRepository) *auditTrail {
	return &auditTrail{repo: repo}
}

func (a *auditTrail) record(ctx context.Context, tx *gorm.DB, action string,
	paymentID *uuid.UUID, oldPayment, newPayment *model.Payment,
	performedBy *uuid.UUID) error {

	entry := &model.PaymentAuditLog{
		PaymentID:             paymentID,
		Action:                action,
		OldValues:             serializePayment(oldPayment),
		NewValues:             serializePayment(newPayment),
		PerformedByEmployeeID: performedBy,
	}
	return a.repo.Create(ctx, tx, entry)
}

func serializePayment(p *model.Payment) *string {
	if p == nil {
		return nil
	}
	snap := paymentSnapshot{
		PaymentDate: p.PaymentDate.Format(dateLayout),
		Amount:      p.Amount.String(),
		PaymentType: p.PaymentType,
	}
	if p.PayerName != nil {
		snap.PayerName = *p.PayerName
	}
	if p.BankAccountID != nil {
		snap.BankAccount = p.BankAccountID.String()
	}
	b, err := json.Marshal(snap)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo serializar el snapshot del pago")
		empty := "{}"
		return &empty
	}
	s := string(b)
	return &s
}
