package service

import (
	"context"
	"time"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"
	"github.com/yacine178/sales/internal/repository"
	"github.com/yacine178/sales/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InventoryService owns the part and product ledgers as a single
// consistency domain. Every product quantity change resolves its
// bill-of-materials cascade and applies both ledgers inside one
// transaction — a partial cascade never persists.
type InventoryService interface {
	// Part ledger
	CreatePart(ctx context.Context, req dto.CreatePartRequest) (*dto.PartResponse, error)
	GetPart(ctx context.Context, id uuid.UUID) (*dto.PartResponse, error)
	ListParts(ctx context.Context, filter dto.PartFilter) (*dto.PartListResponse, error)
	ListLowStockParts(ctx context.Context) ([]dto.PartResponse, error)
	UpdatePart(ctx context.Context, id uuid.UUID, req dto.UpdatePartRequest) (*dto.PartResponse, error)
	DeletePart(ctx context.Context, id uuid.UUID) error
	AdjustPartStock(ctx context.Context, id uuid.UUID, delta int, reason model.StockReason, note string) (*dto.StockMovementResponse, error)

	// Product ledger
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	AdjustProductStock(ctx context.Context, id uuid.UUID, delta int, reason model.StockReason, note string) (*dto.StockAdjustmentResponse, error)

	// AdjustProductStockTx runs the product→part cascade inside an existing
	// transaction — used by the sale ledger so a sale and its stock effects
	// commit or roll back together.
	AdjustProductStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int, reason model.StockReason, ref *uuid.UUID) error

	ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error)
}

type inventoryService struct {
	parts      repository.PartRepository
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	dispatcher *worker.Dispatcher
}

func NewInventoryService(
	parts repository.PartRepository,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
) InventoryService {
	return &inventoryService{
		parts:      parts,
		products:   products,
		movements:  movements,
		dispatcher: dispatcher,
	}
}

// ── Part ledger ───────────────────────────────────────────────────────────────

func (s *inventoryService) CreatePart(ctx context.Context, req dto.CreatePartRequest) (*dto.PartResponse, error) {
	p := &model.Part{
		Name:          req.Name,
		ReferenceCode: req.ReferenceCode,
		Category:      req.Category,
		Quantity:      req.Quantity,
		MinimumStock:  req.MinimumStock,
		UnitPrice:     req.UnitPrice,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
	}
	if err := s.parts.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := partToResponse(p)
	return &resp, nil
}

func (s *inventoryService) GetPart(ctx context.Context, id uuid.UUID) (*dto.PartResponse, error) {
	p, err := s.parts.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUnknownPart
	}
	resp := partToResponse(p)
	return &resp, nil
}

func (s *inventoryService) ListParts(ctx context.Context, filter dto.PartFilter) (*dto.PartListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	parts, total, err := s.parts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PartResponse, 0, len(parts))
	for i := range parts {
		data = append(data, partToResponse(&parts[i]))
	}
	return &dto.PartListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) ListLowStockParts(ctx context.Context) ([]dto.PartResponse, error) {
	parts, err := s.parts.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PartResponse, 0, len(parts))
	for i := range parts {
		data = append(data, partToResponse(&parts[i]))
	}
	return data, nil
}

// UpdatePart is a direct edit: no cascade into products referencing the
// part, and a quantity edit bypasses the movement trail (adjustments go
// through AdjustPartStock).
func (s *inventoryService) UpdatePart(ctx context.Context, id uuid.UUID, req dto.UpdatePartRequest) (*dto.PartResponse, error) {
	p, err := s.parts.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUnknownPart
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.ReferenceCode != nil {
		p.ReferenceCode = *req.ReferenceCode
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.MinimumStock != nil {
		p.MinimumStock = *req.MinimumStock
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if err := s.parts.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := partToResponse(p)
	return &resp, nil
}

// DeletePart refuses to delete a part still referenced by any product's
// bill of materials, so dangling BOM lines cannot exist.
func (s *inventoryService) DeletePart(ctx context.Context, id uuid.UUID) error {
	if _, err := s.parts.FindByID(ctx, id); err != nil {
		return ErrUnknownPart
	}
	refs, err := s.products.CountPartReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrPartReferenced
	}
	return s.parts.Delete(ctx, id)
}

func (s *inventoryService) AdjustPartStock(ctx context.Context, id uuid.UUID, delta int, reason model.StockReason, note string) (*dto.StockMovementResponse, error) {
	if !reason.Valid() {
		return nil, ErrInvalidReason
	}
	var mov *model.StockMovement
	var alerts []worker.LowStockAlertPayload
	txErr := runTx(ctx, s.parts.DB(), func(tx *gorm.DB) error {
		var err error
		mov, err = s.adjustPartTx(tx, id, delta, reason, nil, note, &alerts)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	s.dispatchAlerts(ctx, alerts)
	resp := movementToResponse(mov)
	return &resp, nil
}

// adjustPartTx applies one part-ledger change inside tx: floors the
// quantity at zero and records the movement. The movement keeps the
// requested delta and the deficit the floor swallowed, so an overdraw is
// visible even though the ledger clamps instead of rejecting.
func (s *inventoryService) adjustPartTx(tx *gorm.DB, id uuid.UUID, delta int, reason model.StockReason, ref *uuid.UUID, note string, alerts *[]worker.LowStockAlertPayload) (*model.StockMovement, error) {
	p, err := s.parts.FindByIDTx(tx, id)
	if err != nil {
		return nil, ErrUnknownPart
	}
	before := p.Quantity
	after := before + delta
	deficit := 0
	if after < 0 {
		deficit = -after
		after = 0
	}
	if err := s.parts.SetQuantityTx(tx, id, after); err != nil {
		return nil, err
	}
	mov := &model.StockMovement{
		EntityType:  model.EntityPart,
		EntityID:    id,
		Reason:      reason,
		Delta:       delta,
		StockBefore: before,
		StockAfter:  after,
		Deficit:     deficit,
		ReferenceID: ref,
		Note:        note,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.movements.CreateTx(tx, mov); err != nil {
		return nil, err
	}
	if deficit > 0 {
		log.Warn().
			Str("part", p.Name).
			Int("requested", delta).
			Int("deficit", deficit).
			Msg("part stock floored at zero — consumption exceeded available quantity")
	}
	if alerts != nil && after <= p.MinimumStock {
		*alerts = append(*alerts, worker.LowStockAlertPayload{
			PartID:        p.ID.String(),
			Name:          p.Name,
			ReferenceCode: p.ReferenceCode,
			Quantity:      after,
			MinimumStock:  p.MinimumStock,
		})
	}
	return mov, nil
}

// ── Product ledger ────────────────────────────────────────────────────────────

func (s *inventoryService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	lines, err := normalizeBOM(req.AssemblyParts)
	if err != nil {
		return nil, err
	}

	var alerts []worker.LowStockAlertPayload
	var created *model.Product
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		// Unknown parts must fail the create even when the initial quantity
		// is zero and no cascade runs.
		for _, l := range lines {
			if _, err := s.parts.FindByIDTx(tx, l.PartID); err != nil {
				return ErrUnknownPart
			}
		}

		p := &model.Product{
			Name:          req.Name,
			Category:      req.Category,
			ReferenceCode: req.ReferenceCode,
			Quantity:      req.Quantity,
			UnitPrice:     req.UnitPrice,
			ImageURL:      req.ImageURL,
			Description:   req.Description,
			AssemblyParts: lines,
		}
		if err := s.products.CreateTx(tx, p); err != nil {
			return err
		}

		// The initial quantity is an assembly event: parts are consumed
		// unconditionally, exactly as if the units were assembled one by one.
		for _, pd := range ResolveBOM(lines, req.Quantity, model.ReasonAssembly) {
			if _, err := s.adjustPartTx(tx, pd.PartID, pd.Delta, model.ReasonAssembly, nil, "initial assembly of "+req.Name, &alerts); err != nil {
				return err
			}
		}
		created = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.dispatchAlerts(ctx, alerts)
	return s.GetProduct(ctx, created.ID)
}

func (s *inventoryService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUnknownProduct
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *inventoryService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// UpdateProduct patches a product. A quantity increase is an assembly event
// and consumes parts for the difference; a decrease only lowers the product
// count — parts are considered spent once assembled, so nothing returns to
// the part ledger on this path (disassembly goes through AdjustProductStock
// with an explicit reason instead).
func (s *inventoryService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var newLines []model.AssemblyPart
	if req.AssemblyParts != nil {
		var err error
		newLines, err = normalizeBOM(*req.AssemblyParts)
		if err != nil {
			return nil, err
		}
	}

	var alerts []worker.LowStockAlertPayload
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		p, err := s.products.FindByIDTx(tx, id)
		if err != nil {
			return ErrUnknownProduct
		}

		if req.Quantity != nil {
			diff := *req.Quantity - p.Quantity
			if diff > 0 {
				// Cascade resolves against the bill of materials as it was
				// before this update, even when the lines change in the same
				// request.
				for _, pd := range ResolveBOM(p.AssemblyParts, diff, model.ReasonAssembly) {
					if _, err := s.adjustPartTx(tx, pd.PartID, pd.Delta, model.ReasonAssembly, nil, "assembly of "+p.Name, &alerts); err != nil {
						return err
					}
				}
			}
			mov := &model.StockMovement{
				EntityType:  model.EntityProduct,
				EntityID:    p.ID,
				Reason:      model.ReasonAssembly,
				Delta:       diff,
				StockBefore: p.Quantity,
				StockAfter:  *req.Quantity,
				CreatedAt:   time.Now().UTC(),
			}
			if diff < 0 {
				mov.Reason = model.ReasonAdjustment
			}
			if diff != 0 {
				if err := s.movements.CreateTx(tx, mov); err != nil {
					return err
				}
			}
			p.Quantity = *req.Quantity
		}

		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.ReferenceCode != nil {
			p.ReferenceCode = *req.ReferenceCode
		}
		if req.UnitPrice != nil {
			p.UnitPrice = *req.UnitPrice
		}
		if req.ImageURL != nil {
			p.ImageURL = req.ImageURL
		}
		if req.Description != nil {
			p.Description = req.Description
		}
		if err := s.products.UpdateTx(tx, p); err != nil {
			return err
		}

		if req.AssemblyParts != nil {
			for _, l := range newLines {
				if _, err := s.parts.FindByIDTx(tx, l.PartID); err != nil {
					return ErrUnknownPart
				}
			}
			if err := s.products.ReplaceAssemblyPartsTx(tx, id, newLines); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.dispatchAlerts(ctx, alerts)
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the product and its bill of materials. Parts are
// not returned — assembled units keep their parts.
func (s *inventoryService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return ErrUnknownProduct
	}
	return s.products.Delete(ctx, id)
}

func (s *inventoryService) AdjustProductStock(ctx context.Context, id uuid.UUID, delta int, reason model.StockReason, note string) (*dto.StockAdjustmentResponse, error) {
	if !reason.Valid() {
		return nil, ErrInvalidReason
	}
	var resp dto.StockAdjustmentResponse
	var alerts []worker.LowStockAlertPayload
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		prodMov, partMovs, err := s.adjustProductTx(tx, id, delta, reason, nil, note, &alerts)
		if err != nil {
			return err
		}
		resp.Product = movementToResponse(prodMov)
		resp.Parts = make([]dto.StockMovementResponse, 0, len(partMovs))
		for _, m := range partMovs {
			resp.Parts = append(resp.Parts, movementToResponse(m))
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	s.dispatchAlerts(ctx, alerts)
	return &resp, nil
}

func (s *inventoryService) AdjustProductStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta int, reason model.StockReason, ref *uuid.UUID) error {
	if !reason.Valid() {
		return ErrInvalidReason
	}
	// Alert collection is skipped here: the caller owns the transaction and
	// alerts must only go out after it commits.
	_, _, err := s.adjustProductTx(tx, id, delta, reason, ref, "", nil)
	return err
}

// adjustProductTx is the cascade core: resolve the bill-of-materials deltas
// for the requested product change, apply each to the part ledger, then
// floor the product quantity at zero. Part deltas are resolved from the
// REQUESTED product delta even when the product floor bites — the original
// system behaves this way, and the recorded Deficit keeps the divergence
// auditable instead of silently lost.
func (s *inventoryService) adjustProductTx(tx *gorm.DB, id uuid.UUID, delta int, reason model.StockReason, ref *uuid.UUID, note string, alerts *[]worker.LowStockAlertPayload) (*model.StockMovement, []*model.StockMovement, error) {
	p, err := s.products.FindByIDTx(tx, id)
	if err != nil {
		return nil, nil, ErrUnknownProduct
	}

	// A product increase is an assembly event no matter what reason the
	// caller gave: parts are consumed and their movements say so. Only a
	// decrease carries the caller's reason down to the part ledger.
	partReason := reason
	if delta > 0 {
		partReason = model.ReasonAssembly
	}

	var partMovs []*model.StockMovement
	for _, pd := range ResolveBOM(p.AssemblyParts, delta, reason) {
		mov, err := s.adjustPartTx(tx, pd.PartID, pd.Delta, partReason, ref, note, alerts)
		if err != nil {
			return nil, nil, err
		}
		partMovs = append(partMovs, mov)
	}

	before := p.Quantity
	after := before + delta
	deficit := 0
	if after < 0 {
		deficit = -after
		after = 0
	}
	if err := s.products.SetQuantityTx(tx, id, after); err != nil {
		return nil, nil, err
	}
	prodMov := &model.StockMovement{
		EntityType:  model.EntityProduct,
		EntityID:    id,
		Reason:      reason,
		Delta:       delta,
		StockBefore: before,
		StockAfter:  after,
		Deficit:     deficit,
		ReferenceID: ref,
		Note:        note,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.movements.CreateTx(tx, prodMov); err != nil {
		return nil, nil, err
	}
	if deficit > 0 {
		log.Warn().
			Str("product", p.Name).
			Int("requested", delta).
			Int("deficit", deficit).
			Msg("product stock floored at zero — consumption exceeded available quantity")
	}
	return prodMov, partMovs, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		data = append(data, movementToResponse(&movements[i]))
	}
	return &dto.StockMovementListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) dispatchAlerts(ctx context.Context, alerts []worker.LowStockAlertPayload) {
	if s.dispatcher == nil {
		return
	}
	// Best effort — alerting must never fail a committed cascade.
	for _, a := range alerts {
		if err := s.dispatcher.EnqueueLowStockAlert(ctx, a); err != nil {
			log.Warn().Err(err).Str("part", a.Name).Msg("failed to enqueue low-stock alert")
		}
	}
}

// ── Validation / mapping ──────────────────────────────────────────────────────

// normalizeBOM converts request lines into model lines: zero-quantity lines
// are dropped (not stored), negative quantities and duplicate parts are
// rejected.
func normalizeBOM(lines []dto.AssemblyPartRequest) ([]model.AssemblyPart, error) {
	seen := make(map[uuid.UUID]bool, len(lines))
	out := make([]model.AssemblyPart, 0, len(lines))
	for _, l := range lines {
		partID, err := uuid.Parse(l.PartID)
		if err != nil {
			return nil, ErrUnknownPart
		}
		if l.QuantityPerUnit < 0 {
			return nil, ErrInvalidBOMLine
		}
		if l.QuantityPerUnit == 0 {
			continue
		}
		if seen[partID] {
			return nil, ErrDuplicateBOMLine
		}
		seen[partID] = true
		out = append(out, model.AssemblyPart{PartID: partID, QuantityPerUnit: l.QuantityPerUnit})
	}
	return out, nil
}

func partToResponse(p *model.Part) dto.PartResponse {
	return dto.PartResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		ReferenceCode: p.ReferenceCode,
		Category:      p.Category,
		Quantity:      p.Quantity,
		MinimumStock:  p.MinimumStock,
		UnitPrice:     p.UnitPrice,
		ImageURL:      p.ImageURL,
		Description:   p.Description,
		LowStock:      p.LowStock(),
	}
}

func productToResponse(p *model.Product) dto.ProductResponse {
	lines := make([]dto.AssemblyPartResponse, 0, len(p.AssemblyParts))
	for _, l := range p.AssemblyParts {
		name := ""
		if l.Part != nil {
			name = l.Part.Name
		}
		lines = append(lines, dto.AssemblyPartResponse{
			PartID:          l.PartID.String(),
			PartName:        name,
			QuantityPerUnit: l.QuantityPerUnit,
		})
	}
	return dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Category:      p.Category,
		ReferenceCode: p.ReferenceCode,
		Quantity:      p.Quantity,
		UnitPrice:     p.UnitPrice,
		ImageURL:      p.ImageURL,
		Description:   p.Description,
		AssemblyParts: lines,
	}
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	var ref *string
	if m.ReferenceID != nil {
		v := m.ReferenceID.String()
		ref = &v
	}
	return dto.StockMovementResponse{
		ID:          m.ID.String(),
		EntityType:  m.EntityType,
		EntityID:    m.EntityID.String(),
		Reason:      string(m.Reason),
		Delta:       m.Delta,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Deficit:     m.Deficit,
		ReferenceID: ref,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}
