package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
	"github.com/c14220110/clinic-backend/internal/pharmacy/services"
	"github.com/c14220110/clinic-backend/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const stockColumns = `id, name, quantity, created_at, updated_at`

const saleColumns = `id, batch_id, medicine_id, medicine_name, quantity, sold_at`

// StockRepository is the MariaDB implementation of services.StockStore.
type StockRepository struct {
	DB *sqlx.DB
}

func NewStockRepository(db *sqlx.DB) *StockRepository {
	return &StockRepository{DB: db}
}

var _ services.StockStore = (*StockRepository)(nil)

func (r *StockRepository) ListStock(ctx context.Context, nameQuery string) ([]models.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_items`
	args := []interface{}{}
	if nameQuery != "" {
		query += ` WHERE LOWER(name) LIKE ?`
		args = append(args, "%"+strings.ToLower(nameQuery)+"%")
	}
	query += ` ORDER BY id`

	items := []models.StockItem{}
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return items, nil
}

func (r *StockRepository) GetStock(ctx context.Context, id int64) (*models.StockItem, error) {
	return getStock(ctx, r.DB, id)
}

func (r *StockRepository) CreateStock(ctx context.Context, item *models.StockItem) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO stock_items (name, quantity) VALUES (?, ?)`, item.Name, item.Quantity)
	if err != nil {
		return fmt.Errorf("create stock: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create stock: %w", err)
	}
	created, err := getStock(ctx, r.DB, id)
	if err != nil {
		return err
	}
	*item = *created
	return nil
}

func (r *StockRepository) UpdateStock(ctx context.Context, item *models.StockItem) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE stock_items SET name = ?, quantity = ?, updated_at = CURRENT_TIMESTAMP(3) WHERE id = ?`,
		item.Name, item.Quantity, item.ID)
	if err != nil {
		return fmt.Errorf("update stock %d: %w", item.ID, err)
	}
	// affected rows are 0 for an unchanged row too, so existence is decided by the re-read
	updated, err := getStock(ctx, r.DB, item.ID)
	if err != nil {
		return err
	}
	*item = *updated
	return nil
}

func (r *StockRepository) ListOutOfStock(ctx context.Context) ([]models.StockItem, error) {
	items := []models.StockItem{}
	err := r.DB.SelectContext(ctx, &items,
		`SELECT `+stockColumns+` FROM stock_items WHERE quantity <= 0 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list out of stock: %w", err)
	}
	return items, nil
}

func (r *StockRepository) ListSales(ctx context.Context, medicineID int64) ([]models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	args := []interface{}{}
	if medicineID > 0 {
		query += ` WHERE medicine_id = ?`
		args = append(args, medicineID)
	}
	query += ` ORDER BY sold_at DESC, id DESC`

	sales := []models.Sale{}
	if err := r.DB.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

func (r *StockRepository) WithTx(ctx context.Context, fn func(tx services.StockTx) error) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&stockTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.FromContext(ctx).Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type stockTx struct {
	tx *sqlx.Tx
}

func (t *stockTx) DecrementStock(ctx context.Context, id int64, qty int) (bool, error) {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE stock_items SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP(3) WHERE id = ? AND quantity >= ?`,
		qty, id, qty)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (t *stockTx) GetStock(ctx context.Context, id int64) (*models.StockItem, error) {
	return getStock(ctx, t.tx, id)
}

func (t *stockTx) InsertSale(ctx context.Context, sale *models.Sale) error {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO sales (batch_id, medicine_id, medicine_name, quantity, sold_at) VALUES (?, ?, ?, ?, ?)`,
		sale.BatchID, sale.MedicineID, sale.MedicineName, sale.Quantity, sale.Timestamp)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sale.ID = id
	return nil
}

func getStock(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.StockItem, error) {
	var item models.StockItem
	err := sqlx.GetContext(ctx, q, &item, `SELECT `+stockColumns+` FROM stock_items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", services.ErrStockNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get stock %d: %w", id, err)
	}
	return &item, nil
}
