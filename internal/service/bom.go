package service

import (
	"github.com/yacine178/sales/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartDelta is one resolved bill-of-materials adjustment: apply Delta to
// the part ledger.
type PartDelta struct {
	PartID uuid.UUID
	Delta  int
}

// ResolveBOM computes the part-ledger changes caused by moving a product's
// assembled quantity by delta units.
//
// Assembling (delta > 0) consumes perUnit × delta of every line, whatever
// the reason. Disassembling (delta < 0) returns parts — except on a sale:
// a sold unit's parts were consumed when the unit was assembled, so selling
// it must not touch the part ledger.
func ResolveBOM(lines []model.AssemblyPart, delta int, reason model.StockReason) []PartDelta {
	if delta == 0 {
		return nil
	}
	if delta < 0 && !reason.ReturnsParts() {
		return nil
	}
	out := make([]PartDelta, 0, len(lines))
	for _, l := range lines {
		out = append(out, PartDelta{PartID: l.PartID, Delta: -l.QuantityPerUnit * delta})
	}
	return out
}

var hundred = decimal.NewFromInt(100)

// ComputeTax derives the tax amount and grand total for a subtotal.
// Rate is a percentage (19 means 19%). Disabled tax yields a zero amount
// and total == subtotal.
func ComputeTax(subtotal, rate decimal.Decimal, enabled bool) (tva, total decimal.Decimal) {
	tva = decimal.Zero
	if enabled {
		tva = subtotal.Mul(rate).Div(hundred).Round(2)
	}
	return tva, subtotal.Add(tva)
}
