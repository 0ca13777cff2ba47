package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an assembled unit built from parts according to its bill of
// materials. Quantity counts finished units in stock; changing it cascades
// into the part ledger (see service.ResolveBOM).
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Category      string    `gorm:"not null"`
	ReferenceCode string    `gorm:"uniqueIndex;not null"`
	Quantity      int       `gorm:"not null;default:0"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImageURL      *string
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	AssemblyParts []AssemblyPart `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// AssemblyPart is one bill-of-materials line: assembling one unit of the
// product consumes QuantityPerUnit units of the referenced part.
// A part appears at most once per product.
type AssemblyPart struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_part;not null"`
	PartID          uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_part;not null"`
	QuantityPerUnit int       `gorm:"not null"`

	Part *Part `gorm:"foreignKey:PartID"`
}
