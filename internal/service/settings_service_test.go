package service

import (
	"context"
	"testing"

	"github.com/yacine178/sales/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsDefaults(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo())

	resp, err := svc.GetSettings(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.TvaEnabled)
	assert.Equal(t, "19", resp.TvaRate.String())
	assert.Equal(t, "en", resp.Language)
}

func TestUpdateSettingsPartialPatch(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo())

	rate := decimal.RequireFromString("9.5")
	resp, err := svc.UpdateSettings(context.Background(), dto.UpdateSettingsRequest{TvaRate: &rate})
	require.NoError(t, err)

	assert.Equal(t, "9.5", resp.TvaRate.String())
	// Untouched fields keep their values.
	assert.True(t, resp.TvaEnabled)
	assert.Equal(t, "en", resp.Language)
}

func TestUpdateSettingsDisableTax(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo())

	disabled := false
	resp, err := svc.UpdateSettings(context.Background(), dto.UpdateSettingsRequest{TvaEnabled: &disabled})
	require.NoError(t, err)

	assert.False(t, resp.TvaEnabled)
}
