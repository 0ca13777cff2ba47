package repository

import (
	"context"

	"github.com/yacine178/sales/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SettingsRepository reads and writes the single global settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, s *model.Settings) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

// Get returns the settings row, creating it with defaults on first use.
func (r *settingsRepo) Get(ctx context.Context) (*model.Settings, error) {
	s := model.Settings{
		ID:         1,
		TvaEnabled: true,
		TvaRate:    decimal.NewFromInt(19),
		Language:   "en",
	}
	err := r.db.WithContext(ctx).
		Where(model.Settings{ID: 1}).
		Attrs(s).
		FirstOrCreate(&s).Error
	return &s, err
}

func (r *settingsRepo) Update(ctx context.Context, s *model.Settings) error {
	s.ID = 1
	return r.db.WithContext(ctx).Save(s).Error
}
