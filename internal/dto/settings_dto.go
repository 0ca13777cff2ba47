package dto

import "github.com/shopspring/decimal"

type UpdateSettingsRequest struct {
	TvaEnabled *bool            `json:"tva_enabled"`
	TvaRate    *decimal.Decimal `json:"tva_rate"`
	Language   *string          `json:"language" validate:"omitempty,min=2,max=8"`
}

type SettingsResponse struct {
	TvaEnabled bool            `json:"tva_enabled"`
	TvaRate    decimal.Decimal `json:"tva_rate"`
	Language   string          `json:"language"`
}
