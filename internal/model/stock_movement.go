package model

import (
	"time"

	"github.com/google/uuid"
)

// StockReason classifies why a stock level changed. Cascade behavior is
// defined per variant: a product decrease returns its parts to the part
// ledger for every reason except a sale, because a sold unit's parts were
// consumed when the unit was assembled, not when it was sold.
type StockReason string

const (
	ReasonAssembly   StockReason = "assembly"
	ReasonSale       StockReason = "sale"
	ReasonReturn     StockReason = "return"
	ReasonDamage     StockReason = "damage"
	ReasonAdjustment StockReason = "adjustment"
)

// Valid reports whether r is one of the closed set of reasons.
func (r StockReason) Valid() bool {
	switch r {
	case ReasonAssembly, ReasonSale, ReasonReturn, ReasonDamage, ReasonAdjustment:
		return true
	}
	return false
}

// ReturnsParts reports whether a product stock decrease with this reason
// sends the assembled parts back to the part ledger.
func (r StockReason) ReturnsParts() bool { return r != ReasonSale }

// Entity types recorded on stock movements.
const (
	EntityPart    = "part"
	EntityProduct = "product"
)

// StockMovement records every stock change on a part or product.
// Delta is the requested change; StockAfter is the applied result after the
// zero floor, so Deficit = max(0, -(StockBefore+Delta)) is never lost even
// though the ledger itself clamps.
type StockMovement struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityType  string      `gorm:"type:varchar(10);not null;index:idx_movements_entity"`
	EntityID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_movements_entity"`
	Reason      StockReason `gorm:"type:varchar(20);not null"`
	Delta       int         `gorm:"not null"`
	StockBefore int         `gorm:"not null"`
	StockAfter  int         `gorm:"not null"`
	Deficit     int         `gorm:"not null;default:0"`
	ReferenceID *uuid.UUID  `gorm:"type:uuid"` // sale id when the change came from the sale ledger
	Note        string
	CreatedAt   time.Time
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
