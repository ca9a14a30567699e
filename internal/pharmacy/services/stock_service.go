package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
)

type StockService struct {
	Store StockStore
}

func NewStockService(store StockStore) *StockService {
	return &StockService{Store: store}
}

// List returns every stock item in insertion order, optionally filtered by a
// case-insensitive name fragment.
func (s *StockService) List(ctx context.Context, q string) ([]models.StockItem, error) {
	return s.Store.ListStock(ctx, strings.TrimSpace(q))
}

func (s *StockService) Get(ctx context.Context, id int64) (*models.StockItem, error) {
	if id <= 0 {
		return nil, notFound(id)
	}
	return s.Store.GetStock(ctx, id)
}

// Create adds a stock item. Names are not required to be unique.
func (s *StockService) Create(ctx context.Context, req models.StockRequest) (*models.StockItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidStock)
	}
	qty := 0
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidStock)
	}

	item := &models.StockItem{Name: name, Quantity: qty}
	if err := s.Store.CreateStock(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update overwrites the quantity (and the name when one is given).
func (s *StockService) Update(ctx context.Context, id int64, req models.StockRequest) (*models.StockItem, error) {
	if req.Quantity == nil && strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: quantity or name is required", ErrInvalidStock)
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidStock)
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		item.Name = name
	}
	if err := s.Store.UpdateStock(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListOutOfStock returns the items whose quantity is zero or below.
func (s *StockService) ListOutOfStock(ctx context.Context) ([]models.StockItem, error) {
	return s.Store.ListOutOfStock(ctx)
}
