package dto

import "github.com/shopspring/decimal"

// SaleItemRequest is one invoice line. UnitPrice overrides the product's
// list price when present; otherwise the current product price is
// snapshotted at creation time.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity"   validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"omitempty"`
}

type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id" validate:"required,uuid"`
	Items      []SaleItemRequest `json:"items"       validate:"required,min=1,dive"`
	Status     string            `json:"status"      validate:"omitempty,oneof=pending completed cancelled"`
	Notes      *string           `json:"notes"`
}

// UpdateSaleRequest patches a sale. When Items is present the original
// items are reversed and the new ones applied; the invoice number never
// changes.
type UpdateSaleRequest struct {
	CustomerID *string            `json:"customer_id" validate:"omitempty,uuid"`
	Items      *[]SaleItemRequest `json:"items"       validate:"omitempty,min=1,dive"`
	Status     *string            `json:"status"      validate:"omitempty,oneof=pending completed cancelled"`
	Notes      *string            `json:"notes"`
}

type SaleFilter struct {
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	Status     string `form:"status"      validate:"omitempty,oneof=pending completed cancelled all"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id"`
	InvoiceNumber string             `json:"invoice_number"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TvaAmount     decimal.Decimal    `json:"tva_amount"`
	TvaIncluded   bool               `json:"tva_included"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Status        string             `json:"status"`
	Notes         *string            `json:"notes"`
	Date          string             `json:"date"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// InvoiceNumberResponse previews the next invoice number without consuming it.
type InvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}
