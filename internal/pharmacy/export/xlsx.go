package export

import (
	"bytes"
	"fmt"

	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Stock"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []interface{}{"ID", "Name", "Quantity", "Status"}

// StockStatus labels an item for the export's Status column.
func StockStatus(qty int) string {
	if qty <= 0 {
		return "Out of stock"
	}
	return "In stock"
}

// StockWorkbook writes items into a single-sheet xlsx file.
func StockWorkbook(items []models.StockItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{it.ID, it.Name, it.Quantity, StockStatus(it.Quantity)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return nil, fmt.Errorf("set width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "D", "D", 14); err != nil {
		return nil, fmt.Errorf("set width: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
