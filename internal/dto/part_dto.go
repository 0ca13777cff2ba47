package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreatePartRequest struct {
	Name          string          `json:"name"           validate:"required,min=2,max=120"`
	ReferenceCode string          `json:"reference_code" validate:"required,min=2,max=60"`
	Category      string          `json:"category"       validate:"required"`
	Quantity      int             `json:"quantity"       validate:"min=0"`
	MinimumStock  int             `json:"minimum_stock"  validate:"min=0"`
	UnitPrice     decimal.Decimal `json:"unit_price"     validate:"min=0"`
	ImageURL      *string         `json:"image_url"`
	Description   *string         `json:"description"`
}

type UpdatePartRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=2,max=120"`
	ReferenceCode *string          `json:"reference_code" validate:"omitempty,min=2,max=60"`
	Category      *string          `json:"category"`
	Quantity      *int             `json:"quantity"       validate:"omitempty,min=0"`
	MinimumStock  *int             `json:"minimum_stock"  validate:"omitempty,min=0"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	ImageURL      *string          `json:"image_url"`
	Description   *string          `json:"description"`
}

// AdjustStockRequest is shared by the part and product stock endpoints.
// Delta is signed; Reason must be one of the closed reason set.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,oneof=assembly sale return damage adjustment"`
	Note   string `json:"note"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type PartFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PartResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ReferenceCode string          `json:"reference_code"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	MinimumStock  int             `json:"minimum_stock"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ImageURL      *string         `json:"image_url"`
	Description   *string         `json:"description"`
	LowStock      bool            `json:"low_stock"`
}

type PartListResponse struct {
	Data  []PartResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// StockMovementResponse reports an applied ledger change. Deficit > 0 means
// the zero floor swallowed part of the requested delta.
type StockMovementResponse struct {
	ID          string  `json:"id"`
	EntityType  string  `json:"entity_type"`
	EntityID    string  `json:"entity_id"`
	Reason      string  `json:"reason"`
	Delta       int     `json:"delta"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Deficit     int     `json:"deficit"`
	ReferenceID *string `json:"reference_id"`
	Note        string  `json:"note"`
	CreatedAt   string  `json:"created_at"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

type StockMovementFilter struct {
	EntityType string `form:"entity_type" validate:"omitempty,oneof=part product"`
	EntityID   string `form:"entity_id"   validate:"omitempty,uuid"`
	Reason     string `form:"reason"      validate:"omitempty,oneof=assembly sale return damage adjustment"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}
