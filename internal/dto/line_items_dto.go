package dto

import "github.com/shopspring/decimal"

// Line-item shapes shared by estimates and invoices. Documents own their line
// items exclusively: an edit replaces the whole collection.

type ServiceItemRequest struct {
	ServiceName string          `json:"service_name" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price"        validate:"min=0"`
}

type ProductItemRequest struct {
	ProductName string          `json:"product_name" validate:"required,max=200"`
	Quantity    int             `json:"quantity"     validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"   validate:"min=0"`
}

type ServiceItemResponse struct {
	ID          string          `json:"id"`
	ServiceName string          `json:"service_name"`
	Price       decimal.Decimal `json:"price"`
}

type ProductItemResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}
