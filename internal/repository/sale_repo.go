package repository

import (
	"context"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository defines the data access contract for the sale ledger.
type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	UpdateTx(tx *gorm.DB, s *model.Sale) error
	ReplaceItemsTx(tx *gorm.DB, saleID uuid.UUID, items []model.SaleItem) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// NextInvoiceNumber consumes the next value of the durable invoice
	// sequence. Must be called inside the sale-creation transaction so a
	// rolled-back sale burns the number rather than reusing it.
	NextInvoiceNumber(tx *gorm.DB) (int64, error)
	// PeekInvoiceNumber returns the value NextInvoiceNumber would produce,
	// without consuming it.
	PeekInvoiceNumber(ctx context.Context) (int64, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").
		Order("date DESC").Limit(filter.Limit).Offset(offset).
		Find(&sales).Error
	return sales, total, err
}

// UpdateTx persists base fields; items are replaced via ReplaceItemsTx.
func (r *saleRepo) UpdateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Omit("Items").Save(s).Error
}

func (r *saleRepo) ReplaceItemsTx(tx *gorm.DB, saleID uuid.UUID, items []model.SaleItem) error {
	if err := tx.Where("sale_id = ?", saleID).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].SaleID = saleID
	}
	return tx.Create(&items).Error
}

func (r *saleRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("sale_id = ?", id).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Sale{}, "id = ?", id).Error
}

// Invoice numbers come from a PostgreSQL sequence (created in infra schema
// patches, seeded so the first invoice is INV-1001) — durable across
// restarts, atomic across writers.
func (r *saleRepo) NextInvoiceNumber(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Raw("SELECT nextval('invoice_number_seq')").Scan(&n).Error
	return n, err
}

func (r *saleRepo) PeekInvoiceNumber(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Raw("SELECT CASE WHEN is_called THEN last_value + 1 ELSE last_value END FROM invoice_number_seq").
		Scan(&n).Error
	return n, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
