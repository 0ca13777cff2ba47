package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"
	"github.com/yacine178/sales/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService owns the sale ledger. Creating, editing, or deleting a sale
// adjusts product stock through the inventory cascade inside the same
// transaction, so an invoice and its stock effects always commit together.
type SaleService interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	UpdateSale(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
	PeekInvoiceNumber(ctx context.Context) (*dto.InvoiceNumberResponse, error)
}

type saleService struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	settings  repository.SettingsRepository
	inventory InventoryService
}

func NewSaleService(
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	inventory InventoryService,
) SaleService {
	return &saleService{
		sales:     sales,
		customers: customers,
		products:  products,
		settings:  settings,
		inventory: inventory,
	}
}

func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, ErrUnknownCustomer
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, ErrUnknownCustomer
	}

	// Tax settings are snapshotted onto the invoice so later rate changes
	// never alter historical totals.
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.SaleCompleted
	}

	var saleID uuid.UUID
	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		items, subtotal, err := s.resolveItemsTx(tx, req.Items)
		if err != nil {
			return err
		}
		tva, total := ComputeTax(subtotal, cfg.TvaRate, cfg.TvaEnabled)

		n, err := s.sales.NextInvoiceNumber(tx)
		if err != nil {
			return err
		}

		sale := &model.Sale{
			CustomerID:    customerID,
			InvoiceNumber: fmt.Sprintf("INV-%d", n),
			TotalAmount:   total,
			TvaAmount:     tva,
			TvaIncluded:   cfg.TvaEnabled,
			Date:          time.Now().UTC(),
			Status:        status,
			Notes:         req.Notes,
			Items:         items,
		}
		if err := s.sales.CreateTx(tx, sale); err != nil {
			return err
		}
		saleID = sale.ID

		for _, it := range items {
			if err := s.inventory.AdjustProductStockTx(ctx, tx, it.ProductID, -it.Quantity, model.ReasonSale, &sale.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetSale(ctx, saleID)
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUnknownSale
	}
	resp := saleToResponse(sale)
	return &resp, nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// UpdateSale patches an invoice. When items change, the original quantities
// are returned to product stock first and the new quantities sold against it,
// all inside one transaction; totals are recomputed from the current tax
// settings, and the invoice number is never reissued.
func (s *saleService) UpdateSale(ctx context.Context, id uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUnknownSale
	}

	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, ErrUnknownCustomer
		}
		if _, err := s.customers.FindByID(ctx, customerID); err != nil {
			return nil, ErrUnknownCustomer
		}
		sale.CustomerID = customerID
	}

	var cfg *model.Settings
	if req.Items != nil {
		cfg, err = s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
	}

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		if req.Items != nil {
			for _, it := range sale.Items {
				if err := s.inventory.AdjustProductStockTx(ctx, tx, it.ProductID, it.Quantity, model.ReasonReturn, &sale.ID); err != nil {
					return err
				}
			}

			items, subtotal, err := s.resolveItemsTx(tx, *req.Items)
			if err != nil {
				return err
			}
			tva, total := ComputeTax(subtotal, cfg.TvaRate, cfg.TvaEnabled)
			sale.TotalAmount = total
			sale.TvaAmount = tva
			sale.TvaIncluded = cfg.TvaEnabled

			if err := s.sales.ReplaceItemsTx(tx, sale.ID, items); err != nil {
				return err
			}
			for _, it := range items {
				if err := s.inventory.AdjustProductStockTx(ctx, tx, it.ProductID, -it.Quantity, model.ReasonSale, &sale.ID); err != nil {
					return err
				}
			}
		}

		if req.Status != nil {
			sale.Status = *req.Status
		}
		if req.Notes != nil {
			sale.Notes = req.Notes
		}
		return s.sales.UpdateTx(tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetSale(ctx, id)
}

// DeleteSale removes the invoice and returns its quantities to product stock.
func (s *saleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return ErrUnknownSale
	}
	return runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		for _, it := range sale.Items {
			if err := s.inventory.AdjustProductStockTx(ctx, tx, it.ProductID, it.Quantity, model.ReasonReturn, &sale.ID); err != nil {
				return err
			}
		}
		return s.sales.DeleteTx(tx, sale.ID)
	})
}

// PeekInvoiceNumber previews the next invoice number without consuming it.
func (s *saleService) PeekInvoiceNumber(ctx context.Context) (*dto.InvoiceNumberResponse, error) {
	n, err := s.sales.PeekInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceNumberResponse{InvoiceNumber: fmt.Sprintf("INV-%d", n)}, nil
}

// resolveItemsTx validates each line's product, snapshots its unit price
// (unless the request overrides it), and computes line subtotals plus the
// invoice subtotal.
func (s *saleService) resolveItemsTx(tx *gorm.DB, lines []dto.SaleItemRequest) ([]model.SaleItem, decimal.Decimal, error) {
	items := make([]model.SaleItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, l := range lines {
		productID, err := uuid.Parse(l.ProductID)
		if err != nil {
			return nil, decimal.Zero, ErrUnknownProduct
		}
		p, err := s.products.FindByIDTx(tx, productID)
		if err != nil {
			return nil, decimal.Zero, ErrUnknownProduct
		}
		price := p.UnitPrice
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		lineSubtotal := price.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
		items = append(items, model.SaleItem{
			ProductID: productID,
			Quantity:  l.Quantity,
			UnitPrice: price,
			Subtotal:  lineSubtotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}
	return items, subtotal, nil
}

func saleToResponse(sale *model.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID.String(),
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return dto.SaleResponse{
		ID:            sale.ID.String(),
		CustomerID:    sale.CustomerID.String(),
		InvoiceNumber: sale.InvoiceNumber,
		Items:         items,
		Subtotal:      sale.TotalAmount.Sub(sale.TvaAmount),
		TvaAmount:     sale.TvaAmount,
		TvaIncluded:   sale.TvaIncluded,
		TotalAmount:   sale.TotalAmount,
		Status:        sale.Status,
		Notes:         sale.Notes,
		Date:          sale.Date.Format(time.RFC3339),
	}
}
