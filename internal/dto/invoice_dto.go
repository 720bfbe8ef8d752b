package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// InvoiceFilter is bound from the query string of GET /v1/invoices.
type InvoiceFilter struct {
	ClientName string `form:"client_name"`
	Plate      string `form:"plate"`
	Status     string `form:"status" validate:"omitempty,oneof=PENDIENTE PAGADA"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type InvoiceListItem struct {
	ID             string          `json:"id"`
	ClientFullName string          `json:"client_full_name"`
	VehiclePlate   string          `json:"vehicle_plate"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      string          `json:"created_at"`
}

type InvoiceListResponse struct {
	Data  []InvoiceListItem `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request ────────────────────────────────────────────────────────────────

type InvoiceRequest struct {
	ClientID           string               `json:"client_id"       validate:"required,uuid"`
	VehicleID          *string              `json:"vehicle_id"      validate:"omitempty,uuid"`
	RepairOrderID      *string              `json:"repair_order_id" validate:"omitempty,uuid"`
	EstimateID         *string              `json:"estimate_id"     validate:"omitempty,uuid"`
	DiscountPercentage decimal.Decimal      `json:"discount_percentage" validate:"min=0,max=100"`
	TaxPercentage      decimal.Decimal      `json:"tax_percentage"      validate:"min=0,max=100"`
	Services           []ServiceItemRequest `json:"services" validate:"dive"`
	Products           []ProductItemRequest `json:"products" validate:"dive"`
}

// ─── Responses ──────────────────────────────────────────────────────────────

type InvoiceDetailResponse struct {
	ID                 string                `json:"id"`
	ClientID           string                `json:"client_id"`
	ClientFullName     string                `json:"client_full_name"`
	VehicleID          *string               `json:"vehicle_id"`
	VehiclePlate       *string               `json:"vehicle_plate"`
	RepairOrderID      *string               `json:"repair_order_id"`
	EstimateID         *string               `json:"estimate_id"`
	Status             string                `json:"status"`
	DiscountPercentage decimal.Decimal       `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal       `json:"tax_percentage"`
	Total              decimal.Decimal       `json:"total"`
	Services           []ServiceItemResponse `json:"services"`
	Products           []ProductItemResponse `json:"products"`
	CreatedAt          string                `json:"created_at"`
	UpdatedAt          string                `json:"updated_at"`
}
