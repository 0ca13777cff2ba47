package service

import (
	"context"
	"errors"
	"strings"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── In-memory PartRepository stub ────────────────────────────────────────────

type stubPartRepo struct {
	parts map[uuid.UUID]*model.Part
}

func newStubPartRepo() *stubPartRepo {
	return &stubPartRepo{parts: make(map[uuid.UUID]*model.Part)}
}

func (r *stubPartRepo) Create(_ context.Context, p *model.Part) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.parts[p.ID] = p
	return nil
}

func (r *stubPartRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPartRepo) List(_ context.Context, filter dto.PartFilter) ([]model.Part, int64, error) {
	var result []model.Part
	for _, p := range r.parts {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.LowStock && !p.LowStock() {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubPartRepo) ListLowStock(_ context.Context) ([]model.Part, error) {
	var result []model.Part
	for _, p := range r.parts {
		if p.LowStock() {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubPartRepo) Update(_ context.Context, p *model.Part) error {
	if _, ok := r.parts[p.ID]; !ok {
		return errNotFound
	}
	cp := *p
	r.parts[p.ID] = &cp
	return nil
}

func (r *stubPartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.parts, id)
	return nil
}

func (r *stubPartRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Part, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubPartRepo) SetQuantityTx(_ *gorm.DB, id uuid.UUID, quantity int) error {
	p, ok := r.parts[id]
	if !ok {
		return errNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *stubPartRepo) DB() *gorm.DB { return nil }

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *p
	cp.AssemblyParts = append([]model.AssemblyPart(nil), p.AssemblyParts...)
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	var result []model.Product
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) CountPartReferences(_ context.Context, partID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.products {
		for _, l := range p.AssemblyParts {
			if l.PartID == partID {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.AssemblyParts {
		if p.AssemblyParts[i].ID == uuid.Nil {
			p.AssemblyParts[i].ID = uuid.New()
		}
		p.AssemblyParts[i].ProductID = p.ID
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) SetQuantityTx(_ *gorm.DB, id uuid.UUID, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return errNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *stubProductRepo) UpdateTx(_ *gorm.DB, p *model.Product) error {
	stored, ok := r.products[p.ID]
	if !ok {
		return errNotFound
	}
	lines := stored.AssemblyParts
	cp := *p
	cp.AssemblyParts = lines
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) ReplaceAssemblyPartsTx(_ *gorm.DB, productID uuid.UUID, lines []model.AssemblyPart) error {
	p, ok := r.products[productID]
	if !ok {
		return errNotFound
	}
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		lines[i].ProductID = productID
	}
	p.AssemblyParts = lines
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── In-memory StockMovementRepository stub ───────────────────────────────────

type stubMovementRepo struct {
	movements []*model.StockMovement
}

func newStubMovementRepo() *stubMovementRepo { return &stubMovementRepo{} }

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var result []model.StockMovement
	for _, m := range r.movements {
		if filter.EntityType != "" && m.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != "" && m.EntityID.String() != filter.EntityID {
			continue
		}
		if filter.Reason != "" && string(m.Reason) != filter.Reason {
			continue
		}
		result = append(result, *m)
	}
	return result, int64(len(result)), nil
}

// byEntity returns the recorded movements for one ledger row, oldest first.
func (r *stubMovementRepo) byEntity(entityType string, id uuid.UUID) []*model.StockMovement {
	var result []*model.StockMovement
	for _, m := range r.movements {
		if m.EntityType == entityType && m.EntityID == id {
			result = append(result, m)
		}
	}
	return result
}

// ── In-memory SaleRepository stub ────────────────────────────────────────────

type stubSaleRepo struct {
	sales   map[uuid.UUID]*model.Sale
	counter int64
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale), counter: 1000}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *s
	cp.Items = append([]model.SaleItem(nil), s.Items...)
	return &cp, nil
}

func (r *stubSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var result []model.Sale
	for _, s := range r.sales {
		if filter.CustomerID != "" && s.CustomerID.String() != filter.CustomerID {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && s.Status != filter.Status {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (r *stubSaleRepo) UpdateTx(_ *gorm.DB, s *model.Sale) error {
	stored, ok := r.sales[s.ID]
	if !ok {
		return errNotFound
	}
	items := stored.Items
	cp := *s
	cp.Items = items
	r.sales[s.ID] = &cp
	return nil
}

func (r *stubSaleRepo) ReplaceItemsTx(_ *gorm.DB, saleID uuid.UUID, items []model.SaleItem) error {
	s, ok := r.sales[saleID]
	if !ok {
		return errNotFound
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].SaleID = saleID
	}
	s.Items = items
	return nil
}

func (r *stubSaleRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) NextInvoiceNumber(_ *gorm.DB) (int64, error) {
	r.counter++
	return r.counter, nil
}

func (r *stubSaleRepo) PeekInvoiceNumber(_ context.Context) (int64, error) {
	return r.counter + 1, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

// ── In-memory CustomerRepository stub ────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Phones {
		if c.Phones[i].ID == uuid.Nil {
			c.Phones[i].ID = uuid.New()
		}
		c.Phones[i].CustomerID = c.ID
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *c
	cp.Phones = append([]model.PhoneNumber(nil), c.Phones...)
	return &cp, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	var result []model.Customer
	for _, c := range r.customers {
		result = append(result, *c)
	}
	return result, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	stored, ok := r.customers[c.ID]
	if !ok {
		return errNotFound
	}
	phones := stored.Phones
	cp := *c
	cp.Phones = phones
	r.customers[c.ID] = &cp
	return nil
}

func (r *stubCustomerRepo) ReplacePhones(_ context.Context, customerID uuid.UUID, phones []model.PhoneNumber) error {
	c, ok := r.customers[customerID]
	if !ok {
		return errNotFound
	}
	for i := range phones {
		if phones[i].ID == uuid.Nil {
			phones[i].ID = uuid.New()
		}
		phones[i].CustomerID = customerID
	}
	c.Phones = phones
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

// ── In-memory SettingsRepository stub ────────────────────────────────────────

type stubSettingsRepo struct {
	settings model.Settings
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{settings: model.Settings{
		ID:         1,
		TvaEnabled: true,
		TvaRate:    decimal.NewFromInt(19),
		Language:   "en",
	}}
}

func (r *stubSettingsRepo) Get(_ context.Context) (*model.Settings, error) {
	cp := r.settings
	return &cp, nil
}

func (r *stubSettingsRepo) Update(_ context.Context, s *model.Settings) error {
	r.settings = *s
	r.settings.ID = 1
	return nil
}
