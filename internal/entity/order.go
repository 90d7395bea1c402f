package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderCompleted  = "Completed"
	OrderCancelled  = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItem     `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OrderItem snapshots the product price at settlement time; later product
// edits never change it.
type OrderItem struct {
	ID        int             `json:"id"`
	OrderID   int             `json:"-"`
	ProductID int             `json:"product_id"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
