package service

import (
	"context"
	"errors"
	"time"

	"github.com/mrcdevv/autotech-sub000/internal/apierror"
	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/model"
	"github.com/mrcdevv/autotech-sub000/internal/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// formatTime renders timestamps for API responses. Times are normalized to
// UTC first so the RFC 3339 offset in the output is truthful.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// notFound translates a gorm record-not-found into the domain error; any other
// error passes through as an infrastructure failure.
func notFound(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NewNotFound(resource, id)
	}
	return err
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierror.NewBusiness("ID inválido: " + raw)
	}
	return id, nil
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// ─── Line-item conversions ───────────────────────────────────────────────────

func serviceLines(items []dto.ServiceItemRequest) []money.ServiceLine {
	lines := make([]money.ServiceLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, money.ServiceLine{Price: it.Price})
	}
	return lines
}

func productLines(items []dto.ProductItemRequest) []money.ProductLine {
	lines := make([]money.ProductLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, money.ProductLine{Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return lines
}

func invoiceServiceLines(items []model.InvoiceServiceItem) []money.ServiceLine {
	lines := make([]money.ServiceLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, money.ServiceLine{Price: it.Price})
	}
	return lines
}

func invoiceProductLines(items []model.InvoiceProduct) []money.ProductLine {
	lines := make([]money.ProductLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, money.ProductLine{Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return lines
}
