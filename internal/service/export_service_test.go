package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/yacine178/sales/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsCSV(t *testing.T) {
	products := newStubProductRepo()
	cpu := &model.Part{Name: "CPU Intel i7"}
	pc := &model.Product{
		Name:          "Gaming PC",
		Category:      "computers",
		ReferenceCode: "PC-GAM-001",
		Quantity:      5,
		UnitPrice:     decimal.RequireFromString("1499.99"),
		AssemblyParts: []model.AssemblyPart{
			{QuantityPerUnit: 1, Part: cpu},
			{QuantityPerUnit: 2, Part: &model.Part{Name: "RAM 16GB"}},
		},
	}
	require.NoError(t, products.CreateTx(nil, pc))
	require.NoError(t, products.CreateTx(nil, &model.Product{
		Name:          "Office PC",
		Category:      "computers",
		ReferenceCode: "PC-OFF-001",
		Quantity:      2,
		UnitPrice:     decimal.NewFromInt(799),
		AssemblyParts: []model.AssemblyPart{
			{QuantityPerUnit: 1, Part: nil}, // dangling line is skipped
		},
	}))

	out, err := NewExportService(products).ProductsCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Category", "Quantity", "ReferenceCode", "UnitPrice", "AssemblyParts"}, records[0])

	rows := make(map[string][]string)
	for _, rec := range records[1:] {
		rows[rec[0]] = rec
	}
	gaming := rows["Gaming PC"]
	require.NotNil(t, gaming)
	assert.Equal(t, "5", gaming[2])
	assert.Equal(t, "1499.99", gaming[4])
	assert.Equal(t, "CPU Intel i7 (1), RAM 16GB (2)", gaming[5])

	office := rows["Office PC"]
	require.NotNil(t, office)
	assert.Equal(t, "799.00", office[4])
	assert.Equal(t, "", office[5])
}

func TestProductsCSVEmptyLedger(t *testing.T) {
	out, err := NewExportService(newStubProductRepo()).ProductsCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
