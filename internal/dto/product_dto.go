package dto

import "github.com/shopspring/decimal"

// AssemblyPartRequest is one bill-of-materials line in a create/update
// request. QuantityPerUnit 0 removes the line on update.
type AssemblyPartRequest struct {
	PartID          string `json:"part_id"           validate:"required,uuid"`
	QuantityPerUnit int    `json:"quantity_per_unit" validate:"min=0"`
}

type CreateProductRequest struct {
	Name          string                `json:"name"           validate:"required,min=2,max=120"`
	Category      string                `json:"category"       validate:"required"`
	ReferenceCode string                `json:"reference_code" validate:"required,min=2,max=60"`
	Quantity      int                   `json:"quantity"       validate:"min=0"`
	UnitPrice     decimal.Decimal       `json:"unit_price"     validate:"min=0"`
	ImageURL      *string               `json:"image_url"`
	Description   *string               `json:"description"`
	AssemblyParts []AssemblyPartRequest `json:"assembly_parts" validate:"dive"`
}

type UpdateProductRequest struct {
	Name          *string                `json:"name"           validate:"omitempty,min=2,max=120"`
	Category      *string                `json:"category"`
	ReferenceCode *string                `json:"reference_code" validate:"omitempty,min=2,max=60"`
	Quantity      *int                   `json:"quantity"       validate:"omitempty,min=0"`
	UnitPrice     *decimal.Decimal       `json:"unit_price"`
	ImageURL      *string                `json:"image_url"`
	Description   *string                `json:"description"`
	AssemblyParts *[]AssemblyPartRequest `json:"assembly_parts" validate:"omitempty,dive"`
}

type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AssemblyPartResponse struct {
	PartID          string `json:"part_id"`
	PartName        string `json:"part_name"`
	QuantityPerUnit int    `json:"quantity_per_unit"`
}

type ProductResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Category      string                 `json:"category"`
	ReferenceCode string                 `json:"reference_code"`
	Quantity      int                    `json:"quantity"`
	UnitPrice     decimal.Decimal        `json:"unit_price"`
	ImageURL      *string                `json:"image_url"`
	Description   *string                `json:"description"`
	AssemblyParts []AssemblyPartResponse `json:"assembly_parts"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// StockAdjustmentResponse is returned by the product stock endpoint: the
// product movement plus every part movement the cascade produced.
type StockAdjustmentResponse struct {
	Product StockMovementResponse   `json:"product"`
	Parts   []StockMovementResponse `json:"parts"`
}
