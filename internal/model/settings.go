package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single-row global configuration. Sales snapshot the tax
// fields at creation time — reads of this table never rewrite history.
type Settings struct {
	ID         uint            `gorm:"primaryKey"`
	TvaEnabled bool            `gorm:"not null;default:true"`
	TvaRate    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:19"`
	Language   string          `gorm:"type:varchar(8);not null;default:'en'"`
	UpdatedAt  time.Time
}

// TableName keeps the table singular — there is exactly one row.
func (Settings) TableName() string { return "settings" }
