package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/yacine178/sales/internal/model"
	"github.com/yacine178/sales/internal/repository"
)

// ExportService renders ledger data for downstream consumption.
type ExportService interface {
	ProductsCSV(ctx context.Context) ([]byte, error)
}

type exportService struct {
	products repository.ProductRepository
}

func NewExportService(products repository.ProductRepository) ExportService {
	return &exportService{products: products}
}

// ProductsCSV renders the product ledger with resolved assembly parts.
// Lines whose part no longer resolves are skipped rather than breaking
// the export.
func (s *exportService) ProductsCSV(ctx context.Context) ([]byte, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Name", "Category", "Quantity", "ReferenceCode", "UnitPrice", "AssemblyParts"}); err != nil {
		return nil, err
	}
	for i := range products {
		p := &products[i]
		record := []string{
			p.Name,
			p.Category,
			strconv.Itoa(p.Quantity),
			p.ReferenceCode,
			p.UnitPrice.StringFixed(2),
			assemblyPartsColumn(p.AssemblyParts),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func assemblyPartsColumn(lines []model.AssemblyPart) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Part == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", l.Part.Name, l.QuantityPerUnit))
	}
	return strings.Join(parts, ", ")
}
