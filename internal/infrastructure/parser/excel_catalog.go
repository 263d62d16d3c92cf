package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
)

// ExcelCatalog reads the catalog from a local .xlsx price list with the
// same header row as the product sheet (Модель, Объём, Цвет, Наличие).
// Useful for offline runs and tests when no Google Sheets access exists.
type ExcelCatalog struct {
	path string
}

// NewExcelCatalog builds a product repository over a local workbook.
func NewExcelCatalog(path string) repository.ProductRepository {
	return &ExcelCatalog{path: path}
}

func (e *ExcelCatalog) ListAll(ctx context.Context) ([]entity.Product, error) {
	f, err := excelize.OpenFile(e.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", e.path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if name != "" {
			columns[name] = i
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	products := make([]entity.Product, 0, len(rows)-1)
	for _, row := range rows[1:] {
		product := entity.Product{
			Model:        cell(row, "Модель"),
			Storage:      cell(row, "Объём"),
			Color:        cell(row, "Цвет"),
			Availability: cell(row, "Наличие"),
		}
		if product.Model == "" {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}
