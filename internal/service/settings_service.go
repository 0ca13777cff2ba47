package service

import (
	"context"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/repository"
)

// SettingsService exposes the single global settings row. TVA changes apply
// to sales created afterwards only — stored invoices keep their snapshot.
type SettingsService interface {
	GetSettings(ctx context.Context) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	settings repository.SettingsRepository
}

func NewSettingsService(settings repository.SettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		TvaEnabled: cfg.TvaEnabled,
		TvaRate:    cfg.TvaRate,
		Language:   cfg.Language,
	}, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if req.TvaEnabled != nil {
		cfg.TvaEnabled = *req.TvaEnabled
	}
	if req.TvaRate != nil {
		cfg.TvaRate = *req.TvaRate
	}
	if req.Language != nil {
		cfg.Language = *req.Language
	}
	if err := s.settings.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return s.GetSettings(ctx)
}
