package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
)

func newTestSaleService(items ...models.StockItem) (*SaleService, *mockStockStore) {
	store := newMockStockStore(items...)
	svc := NewSaleService(store)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestSaleService_DeductsAndLogs(t *testing.T) {
	svc, store := newTestSaleService(models.StockItem{ID: 1, Name: "Paracetamol", Quantity: 10})
	ctx := context.Background()

	batch, err := svc.Record(ctx, []models.SaleEntry{{ID: 1, Name: "Paracetamol", Sold: 7}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.items[1].Quantity != 3 {
		t.Errorf("expected 3 left, got %d", store.items[1].Quantity)
	}
	if len(batch.Sales) != 1 || batch.Sales[0].Quantity != 7 || batch.Sales[0].MedicineName != "Paracetamol" {
		t.Errorf("unexpected batch %+v", batch)
	}
	if batch.BatchID == "" || batch.Sales[0].BatchID != batch.BatchID {
		t.Error("expected sales to carry the batch id")
	}

	_, err = svc.Record(ctx, []models.SaleEntry{{ID: 1, Sold: 5}})
	ise, ok := IsInsufficientStock(err)
	if !ok {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if ise.Available != 3 || ise.Requested != 5 {
		t.Errorf("unexpected error detail %+v", ise)
	}
	if store.items[1].Quantity != 3 {
		t.Errorf("expected quantity unchanged at 3, got %d", store.items[1].Quantity)
	}
	if len(store.sales) != 1 {
		t.Errorf("expected 1 sale logged, got %d", len(store.sales))
	}
}

func TestSaleService_AllOrNothing(t *testing.T) {
	svc, store := newTestSaleService(
		models.StockItem{ID: 1, Name: "Paracetamol", Quantity: 10},
		models.StockItem{ID: 2, Name: "Amoxicillin", Quantity: 1},
	)

	_, err := svc.Record(context.Background(), []models.SaleEntry{{ID: 1, Sold: 4}, {ID: 2, Sold: 2}})
	if _, ok := IsInsufficientStock(err); !ok {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if store.items[1].Quantity != 10 || store.items[2].Quantity != 1 {
		t.Errorf("expected no deduction, got %d and %d", store.items[1].Quantity, store.items[2].Quantity)
	}
	if len(store.sales) != 0 {
		t.Errorf("expected no sales, got %d", len(store.sales))
	}
}

func TestSaleService_UnknownItemRollsBack(t *testing.T) {
	svc, store := newTestSaleService(models.StockItem{ID: 1, Name: "Paracetamol", Quantity: 10})

	_, err := svc.Record(context.Background(), []models.SaleEntry{{ID: 1, Sold: 1}, {ID: 42, Sold: 1}})
	if !errors.Is(err, ErrStockNotFound) {
		t.Fatalf("expected ErrStockNotFound, got %v", err)
	}
	if store.items[1].Quantity != 10 || len(store.sales) != 0 {
		t.Error("expected batch to be rolled back")
	}
}

func TestSaleService_RepeatedIDsAccumulate(t *testing.T) {
	svc, store := newTestSaleService(models.StockItem{ID: 1, Name: "Paracetamol", Quantity: 5})

	_, err := svc.Record(context.Background(), []models.SaleEntry{{ID: 1, Sold: 3}, {ID: 1, Sold: 3}})
	if _, ok := IsInsufficientStock(err); !ok {
		t.Fatalf("expected second line to exceed stock, got %v", err)
	}
	if store.items[1].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", store.items[1].Quantity)
	}

	batch, err := svc.Record(context.Background(), []models.SaleEntry{{ID: 1, Sold: 2}, {ID: 1, Sold: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.Units() != 5 || store.items[1].Quantity != 0 {
		t.Errorf("expected 5 units sold and empty stock, got %d and %d", batch.Units(), store.items[1].Quantity)
	}
}

func TestSaleService_Validation(t *testing.T) {
	svc, _ := newTestSaleService(models.StockItem{ID: 1, Name: "Paracetamol", Quantity: 5})

	cases := map[string][]models.SaleEntry{
		"empty":         nil,
		"zero id":       {{ID: 0, Sold: 1}},
		"zero sold":     {{ID: 1, Sold: 0}},
		"negative sold": {{ID: 1, Sold: -2}},
	}
	for name, entries := range cases {
		if _, err := svc.Record(context.Background(), entries); !errors.Is(err, ErrInvalidSale) {
			t.Errorf("%s: expected ErrInvalidSale, got %v", name, err)
		}
	}
}

func TestSaleService_StoreFailure(t *testing.T) {
	svc, store := newTestSaleService(models.StockItem{ID: 1, Name: "Paracetamol", Quantity: 5})
	store.failTx = errMockTx

	_, err := svc.Record(context.Background(), []models.SaleEntry{{ID: 1, Sold: 1}})
	if !errors.Is(err, errMockTx) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestSaleService_ListNewestFirst(t *testing.T) {
	svc, _ := newTestSaleService(
		models.StockItem{ID: 1, Name: "Paracetamol", Quantity: 10},
		models.StockItem{ID: 2, Name: "Amoxicillin", Quantity: 10},
	)
	ctx := context.Background()
	svc.Record(ctx, []models.SaleEntry{{ID: 1, Sold: 1}})
	svc.Record(ctx, []models.SaleEntry{{ID: 2, Sold: 2}})

	all, _ := svc.List(ctx, 0)
	if len(all) != 2 || all[0].MedicineID != 2 {
		t.Errorf("unexpected sale log %+v", all)
	}
	only, _ := svc.List(ctx, 1)
	if len(only) != 1 || only[0].MedicineID != 1 {
		t.Errorf("unexpected filtered log %+v", only)
	}
}
