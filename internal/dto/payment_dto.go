package dto

import "github.com/shopspring/decimal"

// PaymentRequest is shared by create and update.
type PaymentRequest struct {
	PaymentDate string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Amount      decimal.Decimal `json:"amount"       validate:"required,gt=0"`
	PayerName   *string         `json:"payer_name"   validate:"omitempty,max=200"`
	PaymentType string          `json:"payment_type" validate:"required,oneof=EFECTIVO CUENTA_BANCARIA"`
	// BankAccountID is required when payment_type is CUENTA_BANCARIA.
	BankAccountID          *string `json:"bank_account_id"           validate:"omitempty,uuid"`
	RegisteredByEmployeeID *string `json:"registered_by_employee_id" validate:"omitempty,uuid"`
}

type PaymentResponse struct {
	ID                     string          `json:"id"`
	InvoiceID              string          `json:"invoice_id"`
	PaymentDate            string          `json:"payment_date"`
	Amount                 decimal.Decimal `json:"amount"`
	PayerName              *string         `json:"payer_name"`
	PaymentType            string          `json:"payment_type"`
	BankAccountID          *string         `json:"bank_account_id"`
	RegisteredByEmployeeID *string         `json:"registered_by_employee_id"`
	CreatedAt              string          `json:"created_at"`
	UpdatedAt              string          `json:"updated_at"`
}

// PaymentSummaryResponse is recomputed from authoritative state on every read;
// nothing in it is cached besides the invoice's own total column.
type PaymentSummaryResponse struct {
	TotalServices  decimal.Decimal `json:"total_services"`
	TotalProducts  decimal.Decimal `json:"total_products"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Remaining      decimal.Decimal `json:"remaining"`
}
