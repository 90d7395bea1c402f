package entity

import "time"

type Cart struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItem holds one (cart, product) pair. The product appears at most once
// per cart; the joined Product carries the state used for display and for
// re-validation at settlement time.
type CartItem struct {
	ID       int       `json:"id"`
	CartID   int       `json:"-"`
	Quantity int       `json:"quantity"`
	Product  Product   `json:"product"`
	AddedAt  time.Time `json:"added_at"`
}
