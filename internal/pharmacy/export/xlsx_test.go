package export

import (
	"bytes"
	"testing"

	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
	"github.com/xuri/excelize/v2"
)

func TestStockWorkbook(t *testing.T) {
	data, err := StockWorkbook([]models.StockItem{
		{ID: 1, Name: "Paracetamol", Quantity: 3},
		{ID: 2, Name: "Amoxicillin", Quantity: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][3] != "Status" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][1] != "Paracetamol" || rows[1][2] != "3" || rows[1][3] != "In stock" {
		t.Errorf("unexpected first row %v", rows[1])
	}
	if rows[2][3] != "Out of stock" {
		t.Errorf("expected out of stock, got %v", rows[2])
	}
}

func TestStockWorkbook_Empty(t *testing.T) {
	data, err := StockWorkbook(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if list := f.GetSheetList(); len(list) != 1 || list[0] != SheetName {
		t.Errorf("unexpected sheets %v", list)
	}
}

func TestStockWorkbook_HeaderFormatting(t *testing.T) {
	data, err := StockWorkbook([]models.StockItem{{ID: 1, Name: "Cetirizine", Quantity: 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	idx, err := f.GetCellStyle(SheetName, "D1")
	if err != nil {
		t.Fatalf("get cell style: %v", err)
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		t.Fatalf("get style: %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Errorf("expected bold header, got %+v", style.Font)
	}

	width, err := f.GetColWidth(SheetName, "B")
	if err != nil {
		t.Fatalf("get col width: %v", err)
	}
	if width != 32 {
		t.Errorf("expected name column width 32, got %v", width)
	}
}
