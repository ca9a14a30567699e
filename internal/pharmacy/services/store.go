package services

import (
	"context"

	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
)

// StockStore persists stock items and sales. Get and Update return an error
// wrapping ErrStockNotFound for unknown ids.
type StockStore interface {
	ListStock(ctx context.Context, nameQuery string) ([]models.StockItem, error)
	GetStock(ctx context.Context, id int64) (*models.StockItem, error)
	CreateStock(ctx context.Context, item *models.StockItem) error
	UpdateStock(ctx context.Context, item *models.StockItem) error
	ListOutOfStock(ctx context.Context) ([]models.StockItem, error)
	ListSales(ctx context.Context, medicineID int64) ([]models.Sale, error)

	// WithTx runs fn in one transaction; any error from fn rolls back
	// everything fn wrote.
	WithTx(ctx context.Context, fn func(tx StockTx) error) error
}

// StockTx is the view of the store available inside a deduction.
type StockTx interface {
	// DecrementStock subtracts qty only when at least qty units are on hand,
	// as one atomic statement. It reports whether a row was changed.
	DecrementStock(ctx context.Context, id int64, qty int) (bool, error)
	GetStock(ctx context.Context, id int64) (*models.StockItem, error)
	InsertSale(ctx context.Context, sale *models.Sale) error
}
