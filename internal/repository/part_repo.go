package repository

import (
	"context"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PartRepository defines the data access contract for the part ledger.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type PartRepository interface {
	Create(ctx context.Context, p *model.Part) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Part, error)
	List(ctx context.Context, filter dto.PartFilter) ([]model.Part, int64, error)
	ListLowStock(ctx context.Context) ([]model.Part, error)
	Update(ctx context.Context, p *model.Part) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside cascade transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Part, error)
	SetQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type partRepo struct{ db *gorm.DB }

func NewPartRepository(db *gorm.DB) PartRepository { return &partRepo{db: db} }

func (r *partRepo) Create(ctx context.Context, p *model.Part) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *partRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *partRepo) List(ctx context.Context, filter dto.PartFilter) ([]model.Part, int64, error) {
	var parts []model.Part
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Part{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.LowStock {
		q = q.Where("quantity <= minimum_stock")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&parts).Error
	return parts, total, err
}

func (r *partRepo) ListLowStock(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.WithContext(ctx).
		Where("quantity <= minimum_stock").
		Order("name ASC").
		Find(&parts).Error
	return parts, err
}

func (r *partRepo) Update(ctx context.Context, p *model.Part) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *partRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Part{}, "id = ?", id).Error
}

// FindByIDTx locks the row for the duration of the cascade transaction so
// concurrent cascades touching the same part serialize.
func (r *partRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Part, error) {
	var p model.Part
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *partRepo) SetQuantityTx(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Part{}).Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *partRepo) DB() *gorm.DB { return r.db }
