// =============================================================================
// Mercado - Inventory Report Writer
// =============================================================================
//
// This module writes the current inventory to an XLSX workbook: one header
// row, one row per product, with the price column carrying the formatted
// currency value alongside the raw decimal.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/mercado/internal/render"
	"github.com/ginjaninja78/mercado/internal/types"
)

// sheetName is the single sheet the report is written to.
const sheetName = "Inventory"

// header is the first row of the report.
var header = []string{"Code", "Product Name", "Price", "Formatted Price", "Sold In"}

// WriteInventory writes an XLSX inventory report into dir and returns the
// full path of the generated file. File names carry a timestamp and a
// short random suffix so repeated exports never collide.
func WriteInventory(products []*types.Product, dir string, renderer *render.Renderer) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to name report sheet: %w", err)
	}

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return "", fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for i, p := range products {
		price, _ := p.Price.Float64()
		values := []any{p.Code, p.Name, price, renderer.Currency(p.Price), string(p.SoldIn)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return "", fmt.Errorf("failed to address report cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", fmt.Errorf("failed to write report cell: %w", err)
			}
		}
	}

	path := filepath.Join(dir, reportFileName(time.Now()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

// reportFileName builds the report file name from a timestamp and a short
// random suffix.
func reportFileName(now time.Time) string {
	return fmt.Sprintf("inventory_%s_%s.xlsx",
		now.Format("20060102_150405"), uuid.New().String()[:8])
}
