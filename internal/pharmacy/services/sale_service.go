package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/c14220110/clinic-backend/internal/pharmacy/models"
	"github.com/google/uuid"
)

type SaleService struct {
	Store StockStore
	now   func() time.Time
}

func NewSaleService(store StockStore) *SaleService {
	return &SaleService{Store: store, now: time.Now}
}

// Record applies a sale batch against stock, all or nothing.
//
// Entries are processed in order inside one transaction. Each entry is a
// conditional decrement followed by a Sale row; the first entry that refers to
// an unknown item or asks for more than is on hand aborts the batch and rolls
// back every earlier entry. Repeated ids see the quantity left by the
// previous entry for the same item.
func (s *SaleService) Record(ctx context.Context, entries []models.SaleEntry) (*models.SaleBatch, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	batch := &models.SaleBatch{BatchID: uuid.New().String()}
	soldAt := s.now().UTC()

	err := s.Store.WithTx(ctx, func(tx StockTx) error {
		sales := make([]models.Sale, 0, len(entries))
		for _, e := range entries {
			ok, err := tx.DecrementStock(ctx, e.ID, e.Sold)
			if err != nil {
				return fmt.Errorf("decrement stock %d: %w", e.ID, err)
			}

			item, err := tx.GetStock(ctx, e.ID)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{
					ItemID:    item.ID,
					Name:      item.Name,
					Requested: e.Sold,
					Available: item.Quantity,
				}
			}

			sale := models.Sale{
				BatchID:      batch.BatchID,
				MedicineID:   item.ID,
				MedicineName: item.Name,
				Quantity:     e.Sold,
				Timestamp:    soldAt,
			}
			if err := tx.InsertSale(ctx, &sale); err != nil {
				return fmt.Errorf("insert sale for stock %d: %w", e.ID, err)
			}
			sales = append(sales, sale)
		}
		batch.Sales = sales
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// List returns the sale log newest first; medicineID 0 means every item.
func (s *SaleService) List(ctx context.Context, medicineID int64) ([]models.Sale, error) {
	return s.Store.ListSales(ctx, medicineID)
}

func validateEntries(entries []models.SaleEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: at least one entry is required", ErrInvalidSale)
	}
	for i, e := range entries {
		if e.ID <= 0 {
			return fmt.Errorf("%w: entry %d has no valid id", ErrInvalidSale, i)
		}
		if e.Sold <= 0 {
			return fmt.Errorf("%w: entry %d (id %d) must sell a positive quantity", ErrInvalidSale, i, e.ID)
		}
	}
	return nil
}

// IsInsufficientStock reports whether err carries an InsufficientStockError.
func IsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
