package repository

import (
	"context"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the data access contract for the product ledger
// and its bill-of-materials lines.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// CountPartReferences returns how many bill-of-materials lines across all
	// products reference the given part. Used for the referential-integrity
	// check on part deletion.
	CountPartReferences(ctx context.Context, partID uuid.UUID) (int64, error)

	// Used inside cascade transactions — callers must pass the tx instance.
	// Creation runs in a transaction too: the initial quantity triggers an
	// assembly cascade that must commit with the product row.
	CreateTx(tx *gorm.DB, p *model.Product) error
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	SetQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error
	UpdateTx(tx *gorm.DB, p *model.Product) error
	ReplaceAssemblyPartsTx(tx *gorm.DB, productID uuid.UUID, lines []model.AssemblyPart) error

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) CreateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("AssemblyParts.Part").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("AssemblyParts.Part").
		Order("name ASC").Limit(filter.Limit).Offset(offset).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("AssemblyParts.Part").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// UpdateTx persists base fields only; bill-of-materials lines change through
// ReplaceAssemblyPartsTx so cascades stay inside the transaction.
func (r *productRepo) UpdateTx(tx *gorm.DB, p *model.Product) error {
	return tx.Omit(clause.Associations).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&model.Product{ID: id}).Error
}

func (r *productRepo) CountPartReferences(ctx context.Context, partID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.AssemblyPart{}).
		Where("part_id = ?", partID).Count(&n).Error
	return n, err
}

// FindByIDTx locks the product row for the cascade transaction and loads its
// bill of materials.
func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("AssemblyParts").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) SetQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *productRepo) ReplaceAssemblyPartsTx(tx *gorm.DB, productID uuid.UUID, lines []model.AssemblyPart) error {
	if err := tx.Where("product_id = ?", productID).Delete(&model.AssemblyPart{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].ProductID = productID
	}
	return tx.Create(&lines).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
