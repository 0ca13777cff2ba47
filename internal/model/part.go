package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Part is a purchasable component consumed when products are assembled.
type Part struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	ReferenceCode string    `gorm:"uniqueIndex;not null"`
	Category      string    `gorm:"not null"`
	Quantity      int       `gorm:"not null;default:0"`
	MinimumStock  int       `gorm:"not null;default:0"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImageURL      *string
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock reports whether the part sits at or below its minimum stock level.
func (p *Part) LowStock() bool { return p.Quantity <= p.MinimumStock }
