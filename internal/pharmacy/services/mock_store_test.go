package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
)

// -- Mock Store --

type mockStockStore struct {
	items  map[int64]*models.StockItem
	sales  []models.Sale
	nextID int64
	failTx error
}

func newMockStockStore(items ...models.StockItem) *mockStockStore {
	m := &mockStockStore{items: make(map[int64]*models.StockItem)}
	for _, it := range items {
		it := it
		m.items[it.ID] = &it
		if it.ID > m.nextID {
			m.nextID = it.ID
		}
	}
	return m
}

func (m *mockStockStore) ListStock(_ context.Context, q string) ([]models.StockItem, error) {
	out := []models.StockItem{}
	for _, it := range m.items {
		if q == "" || strings.Contains(strings.ToLower(it.Name), strings.ToLower(q)) {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStockStore) GetStock(_ context.Context, id int64) (*models.StockItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *it
	return &cp, nil
}

func (m *mockStockStore) CreateStock(_ context.Context, item *models.StockItem) error {
	m.nextID++
	item.ID = m.nextID
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockStockStore) UpdateStock(_ context.Context, item *models.StockItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return notFound(item.ID)
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockStockStore) ListOutOfStock(ctx context.Context) ([]models.StockItem, error) {
	all, _ := m.ListStock(ctx, "")
	out := []models.StockItem{}
	for _, it := range all {
		if it.Quantity <= 0 {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockStockStore) ListSales(_ context.Context, medicineID int64) ([]models.Sale, error) {
	out := []models.Sale{}
	for i := len(m.sales) - 1; i >= 0; i-- {
		if medicineID == 0 || m.sales[i].MedicineID == medicineID {
			out = append(out, m.sales[i])
		}
	}
	return out, nil
}

// WithTx snapshots the store and restores it when fn fails.
func (m *mockStockStore) WithTx(ctx context.Context, fn func(tx StockTx) error) error {
	if m.failTx != nil {
		return m.failTx
	}
	saved := make(map[int64]models.StockItem, len(m.items))
	for id, it := range m.items {
		saved[id] = *it
	}
	savedSales := len(m.sales)

	if err := fn(m); err != nil {
		for id := range m.items {
			it := saved[id]
			m.items[id] = &it
		}
		m.sales = m.sales[:savedSales]
		return err
	}
	return nil
}

func (m *mockStockStore) DecrementStock(_ context.Context, id int64, qty int) (bool, error) {
	it, ok := m.items[id]
	if !ok || it.Quantity < qty {
		return false, nil
	}
	it.Quantity -= qty
	return true, nil
}

func (m *mockStockStore) InsertSale(_ context.Context, sale *models.Sale) error {
	sale.ID = int64(len(m.sales) + 1)
	m.sales = append(m.sales, *sale)
	return nil
}

var errMockTx = errors.New("connection refused")
