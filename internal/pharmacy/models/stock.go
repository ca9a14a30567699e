package models

import "time"

// StockItem is a medicine with its on-hand quantity.
type StockItem struct {
	ID        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Quantity  int       `json:"quantity"   db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StockRequest is the payload of POST /stock and PATCH /stock/:id.
// Quantity is a pointer so a PATCH without it can be told apart from zero.
type StockRequest struct {
	Name     string `json:"name"`
	Quantity *int   `json:"quantity"`
}
