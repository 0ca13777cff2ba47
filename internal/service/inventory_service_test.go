package service

import (
	"context"
	"testing"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventoryFixture struct {
	parts     *stubPartRepo
	products  *stubProductRepo
	movements *stubMovementRepo
	svc       InventoryService
}

func newInventoryFixture() *inventoryFixture {
	parts := newStubPartRepo()
	products := newStubProductRepo()
	movements := newStubMovementRepo()
	return &inventoryFixture{
		parts:     parts,
		products:  products,
		movements: movements,
		svc:       NewInventoryService(parts, products, movements, nil),
	}
}

func (f *inventoryFixture) addPart(t *testing.T, name string, quantity, minimum int) uuid.UUID {
	t.Helper()
	p := &model.Part{
		Name:          name,
		ReferenceCode: name,
		Category:      "components",
		Quantity:      quantity,
		MinimumStock:  minimum,
		UnitPrice:     decimal.NewFromInt(10),
	}
	require.NoError(t, f.parts.Create(context.Background(), p))
	return p.ID
}

func (f *inventoryFixture) partQuantity(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.parts.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

// ── Part ledger ───────────────────────────────────────────────────────────────

func TestAdjustPartStockFloorsAtZeroAndRecordsDeficit(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)

	mov, err := f.svc.AdjustPartStock(context.Background(), cpu, -20, model.ReasonDamage, "water damage")
	require.NoError(t, err)

	assert.Equal(t, 0, f.partQuantity(t, cpu))
	assert.Equal(t, -20, mov.Delta)
	assert.Equal(t, 15, mov.StockBefore)
	assert.Equal(t, 0, mov.StockAfter)
	assert.Equal(t, 5, mov.Deficit)
	assert.Equal(t, "damage", mov.Reason)
}

func TestAdjustPartStockUnknownPart(t *testing.T) {
	f := newInventoryFixture()

	_, err := f.svc.AdjustPartStock(context.Background(), uuid.New(), 1, model.ReasonAdjustment, "")
	assert.ErrorIs(t, err, ErrUnknownPart)
}

func TestAdjustPartStockRejectsUnknownReason(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)

	_, err := f.svc.AdjustPartStock(context.Background(), cpu, 1, model.StockReason("shrinkage"), "")
	assert.ErrorIs(t, err, ErrInvalidReason)
}

func TestUpdatePartDirectQuantityEditDoesNotRecordMovement(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)

	qty := 40
	resp, err := f.svc.UpdatePart(context.Background(), cpu, dto.UpdatePartRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, 40, resp.Quantity)
	assert.Empty(t, f.movements.byEntity(model.EntityPart, cpu))
}

func TestDeletePartRejectedWhileReferenced(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)

	_, err := f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:          "Gaming PC",
		Category:      "computers",
		ReferenceCode: "PC-001",
		Quantity:      0,
		UnitPrice:     decimal.NewFromInt(1500),
		AssemblyParts: []dto.AssemblyPartRequest{{PartID: cpu.String(), QuantityPerUnit: 1}},
	})
	require.NoError(t, err)

	err = f.svc.DeletePart(context.Background(), cpu)
	assert.ErrorIs(t, err, ErrPartReferenced)
}

// ── Product ledger ────────────────────────────────────────────────────────────

func TestCreateProductConsumesPartsForInitialQuantity(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)
	gpu := f.addPart(t, "GPU", 8, 3)

	resp, err := f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:          "Gaming PC",
		Category:      "computers",
		ReferenceCode: "PC-001",
		Quantity:      5,
		UnitPrice:     decimal.RequireFromString("1499.99"),
		AssemblyParts: []dto.AssemblyPartRequest{
			{PartID: cpu.String(), QuantityPerUnit: 1},
			{PartID: gpu.String(), QuantityPerUnit: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Quantity)
	assert.Equal(t, 10, f.partQuantity(t, cpu))
	assert.Equal(t, 3, f.partQuantity(t, gpu))

	movs := f.movements.byEntity(model.EntityPart, cpu)
	require.Len(t, movs, 1)
	assert.Equal(t, model.ReasonAssembly, movs[0].Reason)
	assert.Equal(t, -5, movs[0].Delta)
}

func TestCreateProductRejectsDuplicateBOMLines(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)

	_, err := f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:          "Gaming PC",
		Category:      "computers",
		ReferenceCode: "PC-001",
		UnitPrice:     decimal.NewFromInt(1500),
		AssemblyParts: []dto.AssemblyPartRequest{
			{PartID: cpu.String(), QuantityPerUnit: 1},
			{PartID: cpu.String(), QuantityPerUnit: 2},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateBOMLine)
}

func TestCreateProductRejectsNegativeBOMLine(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)

	_, err := f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:          "Gaming PC",
		Category:      "computers",
		ReferenceCode: "PC-001",
		UnitPrice:     decimal.NewFromInt(1500),
		AssemblyParts: []dto.AssemblyPartRequest{{PartID: cpu.String(), QuantityPerUnit: -1}},
	})
	assert.ErrorIs(t, err, ErrInvalidBOMLine)
}

func TestCreateProductDropsZeroQuantityLines(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)
	gpu := f.addPart(t, "GPU", 8, 3)

	resp, err := f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:          "Gaming PC",
		Category:      "computers",
		ReferenceCode: "PC-001",
		Quantity:      2,
		UnitPrice:     decimal.NewFromInt(1500),
		AssemblyParts: []dto.AssemblyPartRequest{
			{PartID: cpu.String(), QuantityPerUnit: 1},
			{PartID: gpu.String(), QuantityPerUnit: 0},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.AssemblyParts, 1)
	assert.Equal(t, cpu.String(), resp.AssemblyParts[0].PartID)
	assert.Equal(t, 8, f.partQuantity(t, gpu))
}

func TestCreateProductUnknownPartFailsEvenWithZeroQuantity(t *testing.T) {
	f := newInventoryFixture()

	_, err := f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:          "Gaming PC",
		Category:      "computers",
		ReferenceCode: "PC-001",
		Quantity:      0,
		UnitPrice:     decimal.NewFromInt(1500),
		AssemblyParts: []dto.AssemblyPartRequest{{PartID: uuid.NewString(), QuantityPerUnit: 1}},
	})
	assert.ErrorIs(t, err, ErrUnknownPart)
}

func (f *inventoryFixture) addProduct(t *testing.T, quantity int, lines ...dto.AssemblyPartRequest) uuid.UUID {
	t.Helper()
	resp, err := f.svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:          "Gaming PC",
		Category:      "computers",
		ReferenceCode: "PC-" + uuid.NewString()[:8],
		Quantity:      quantity,
		UnitPrice:     decimal.RequireFromString("1499.99"),
		AssemblyParts: lines,
	})
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	return id
}

func TestUpdateProductQuantityIncreaseConsumesParts(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)
	pc := f.addProduct(t, 5, dto.AssemblyPartRequest{PartID: cpu.String(), QuantityPerUnit: 1})
	// 15 - 5 consumed on create
	require.Equal(t, 10, f.partQuantity(t, cpu))

	qty := 8
	resp, err := f.svc.UpdateProduct(context.Background(), pc, dto.UpdateProductRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, 8, resp.Quantity)
	assert.Equal(t, 7, f.partQuantity(t, cpu))
}

func TestUpdateProductQuantityDecreaseDoesNotReturnParts(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)
	pc := f.addProduct(t, 5, dto.AssemblyPartRequest{PartID: cpu.String(), QuantityPerUnit: 1})

	qty := 2
	resp, err := f.svc.UpdateProduct(context.Background(), pc, dto.UpdateProductRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Quantity)
	// Assembled units keep their parts: the edit only lowers the count.
	assert.Equal(t, 10, f.partQuantity(t, cpu))
}

func TestUpdateProductCascadeUsesOldBOMWhenBothChange(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)
	gpu := f.addPart(t, "GPU", 8, 3)
	pc := f.addProduct(t, 2, dto.AssemblyPartRequest{PartID: cpu.String(), QuantityPerUnit: 1})
	require.Equal(t, 13, f.partQuantity(t, cpu))

	qty := 4
	newLines := []dto.AssemblyPartRequest{{PartID: gpu.String(), QuantityPerUnit: 1}}
	resp, err := f.svc.UpdateProduct(context.Background(), pc, dto.UpdateProductRequest{
		Quantity:      &qty,
		AssemblyParts: &newLines,
	})
	require.NoError(t, err)

	// The two extra units were assembled from the lines in force before the
	// update; the new line set only applies afterwards.
	assert.Equal(t, 11, f.partQuantity(t, cpu))
	assert.Equal(t, 8, f.partQuantity(t, gpu))
	require.Len(t, resp.AssemblyParts, 1)
	assert.Equal(t, gpu.String(), resp.AssemblyParts[0].PartID)
}

func TestAdjustProductStockSaleLeavesPartLedgerAlone(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)
	pc := f.addProduct(t, 5, dto.AssemblyPartRequest{PartID: cpu.String(), QuantityPerUnit: 1})

	resp, err := f.svc.AdjustProductStock(context.Background(), pc, -2, model.ReasonSale, "")
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Product.StockAfter)
	assert.Empty(t, resp.Parts)
	assert.Equal(t, 10, f.partQuantity(t, cpu))
}

func TestAdjustProductStockDamageReturnsParts(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)
	pc := f.addProduct(t, 5, dto.AssemblyPartRequest{PartID: cpu.String(), QuantityPerUnit: 2})
	require.Equal(t, 5, f.partQuantity(t, cpu))

	resp, err := f.svc.AdjustProductStock(context.Background(), pc, -2, model.ReasonDamage, "returned units stripped")
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Product.StockAfter)
	require.Len(t, resp.Parts, 1)
	assert.Equal(t, 4, resp.Parts[0].Delta)
	assert.Equal(t, 9, f.partQuantity(t, cpu))
}

func TestAdjustProductStockFloorStillResolvesRequestedPartDelta(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 100, 5)
	pc := f.addProduct(t, 2, dto.AssemblyPartRequest{PartID: cpu.String(), QuantityPerUnit: 1})
	require.Equal(t, 98, f.partQuantity(t, cpu))

	// Removing 5 from a stock of 2 floors the product at 0 but still
	// returns parts for all 5 requested units; the movement keeps the
	// mismatch visible as a deficit.
	resp, err := f.svc.AdjustProductStock(context.Background(), pc, -5, model.ReasonReturn, "")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Product.StockAfter)
	assert.Equal(t, 3, resp.Product.Deficit)
	assert.Equal(t, 103, f.partQuantity(t, cpu))
}

func TestProductIncreaseRecordsAssemblyReasonOnPartMovements(t *testing.T) {
	f := newInventoryFixture()
	cpu := f.addPart(t, "CPU", 15, 5)
	pc := f.addProduct(t, 0, dto.AssemblyPartRequest{PartID: cpu.String(), QuantityPerUnit: 1})

	_, err := f.svc.AdjustProductStock(context.Background(), pc, 3, model.ReasonReturn, "")
	require.NoError(t, err)

	movs := f.movements.byEntity(model.EntityPart, cpu)
	require.Len(t, movs, 1)
	assert.Equal(t, model.ReasonAssembly, movs[0].Reason)
	assert.Equal(t, -3, movs[0].Delta)
	assert.Equal(t, 12, f.partQuantity(t, cpu))
}
