package service

import "errors"

// Typed domain errors returned by the ledger services. Any of these
// surfacing mid-cascade rolls back the whole transaction, so a partial
// cascade never persists.
var (
	ErrUnknownPart      = errors.New("part not found")
	ErrUnknownProduct   = errors.New("product not found")
	ErrUnknownCustomer  = errors.New("customer not found")
	ErrUnknownSale      = errors.New("sale not found")
	ErrUnknownCategory  = errors.New("category not found")
	ErrDuplicateBOMLine = errors.New("part listed more than once in assembly")
	ErrInvalidBOMLine   = errors.New("assembly line quantity must not be negative")
	ErrPartReferenced   = errors.New("part is referenced by a product assembly")
	ErrInvalidReason    = errors.New("unknown stock adjustment reason")
	ErrPhonesRequired   = errors.New("customer must keep at least one phone number")
)
