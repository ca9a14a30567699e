package models

import "time"

// Sale witnesses one deducted line item. Lines submitted together share a BatchID.
type Sale struct {
	ID           int64     `json:"id"            db:"id"`
	BatchID      string    `json:"batch_id"      db:"batch_id"`
	MedicineID   int64     `json:"medicine_id"   db:"medicine_id"`
	MedicineName string    `json:"medicine_name" db:"medicine_name"`
	Quantity     int       `json:"quantity"      db:"quantity"`
	Timestamp    time.Time `json:"timestamp"     db:"sold_at"`
}

// SaleEntry is one requested deduction; Name is informational only.
type SaleEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
	Sold int    `json:"sold"`
}

// SaleRequest is the payload of POST /sales.
type SaleRequest struct {
	Entries []SaleEntry `json:"entries"`
}

// SaleBatch is the result of a fully applied deduction.
type SaleBatch struct {
	BatchID string `json:"batch_id"`
	Sales   []Sale `json:"sales"`
}

// Units is the total quantity deducted by the batch.
func (b SaleBatch) Units() int {
	n := 0
	for _, s := range b.Sales {
		n += s.Quantity
	}
	return n
}
