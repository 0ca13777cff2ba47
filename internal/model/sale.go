package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. Status is descriptive only — it never drives stock cascades.
const (
	SalePending   = "pending"
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// Sale is an invoice: a customer reference plus line items and stored totals.
// TvaAmount/TvaIncluded snapshot the tax settings at creation time so later
// rate changes never alter historical invoices.
type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	InvoiceNumber string    `gorm:"uniqueIndex;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TvaAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TvaIncluded   bool            `gorm:"not null;default:false"`
	Date          time.Time       `gorm:"not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'completed'"`
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is one invoice line. Subtotal is derived (quantity × unit price)
// but stored, matching the invoice as printed.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
