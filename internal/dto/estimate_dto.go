package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// EstimateFilter is bound from the query string of GET /v1/estimates.
type EstimateFilter struct {
	ClientName string `form:"client_name"`
	Plate      string `form:"plate"`
	Status     string `form:"status" validate:"omitempty,oneof=PENDIENTE ACEPTADO RECHAZADO"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type EstimateListItem struct {
	ID             string          `json:"id"`
	ClientFullName string          `json:"client_full_name"`
	VehiclePlate   string          `json:"vehicle_plate"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      string          `json:"created_at"`
}

type EstimateListResponse struct {
	Data  []EstimateListItem `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Request ────────────────────────────────────────────────────────────────

type EstimateRequest struct {
	ClientID           string               `json:"client_id"       validate:"required,uuid"`
	VehicleID          string               `json:"vehicle_id"      validate:"required,uuid"`
	RepairOrderID      *string              `json:"repair_order_id" validate:"omitempty,uuid"`
	DiscountPercentage decimal.Decimal      `json:"discount_percentage" validate:"min=0,max=100"`
	TaxPercentage      decimal.Decimal      `json:"tax_percentage"      validate:"min=0,max=100"`
	Services           []ServiceItemRequest `json:"services" validate:"dive"`
	Products           []ProductItemRequest `json:"products" validate:"dive"`
}

// ─── Responses ──────────────────────────────────────────────────────────────

type EstimateDetailResponse struct {
	ID                 string                `json:"id"`
	ClientID           string                `json:"client_id"`
	ClientFullName     string                `json:"client_full_name"`
	VehicleID          string                `json:"vehicle_id"`
	VehiclePlate       string                `json:"vehicle_plate"`
	RepairOrderID      *string               `json:"repair_order_id"`
	Status             string                `json:"status"`
	DiscountPercentage decimal.Decimal       `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal       `json:"tax_percentage"`
	Total              decimal.Decimal       `json:"total"`
	Services           []ServiceItemResponse `json:"services"`
	Products           []ProductItemResponse `json:"products"`
	CreatedAt          string                `json:"created_at"`
	UpdatedAt          string                `json:"updated_at"`
}

// EstimateInvoiceData is the immutable seed produced from an ACEPTADO estimate
// to create an invoice. Reading it twice is allowed; it never mutates the
// estimate.
type EstimateInvoiceData struct {
	EstimateID         string               `json:"estimate_id"`
	ClientID           string               `json:"client_id"`
	VehicleID          string               `json:"vehicle_id"`
	RepairOrderID      *string              `json:"repair_order_id"`
	DiscountPercentage decimal.Decimal      `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal      `json:"tax_percentage"`
	Total              decimal.Decimal      `json:"total"`
	Services           []ServiceItemRequest `json:"services"`
	Products           []ProductItemRequest `json:"products"`
}
