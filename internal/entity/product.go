package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ConditionNew  = "New"
	ConditionUsed = "Used"
)

type Product struct {
	ID          int             `json:"id"`
	SellerID    int             `json:"seller_id"`
	SellerName  string          `json:"seller_name,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Condition   string          `json:"condition"`
	Location    string          `json:"location,omitempty"`
	CategoryID  int             `json:"category_id"`
	Category    string          `json:"category_name,omitempty"`
	IsActive    bool            `json:"is_active"`
	IsSold      bool            `json:"is_sold"`
	BoughtBy    *int            `json:"bought_by,omitempty"`
	Images      []ProductImage  `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductImage is a gallery entry for a listing, displayed in SortOrder.
type ProductImage struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption,omitempty"`
	SortOrder int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductFilter narrows catalog listings. Zero values mean "no constraint".
type ProductFilter struct {
	Title     string
	Category  string
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
	Location  string
	Condition string

	// ExcludeSellerID hides the viewer's own listings; set for non-admins.
	ExcludeSellerID int
	// IncludeUnavailable keeps sold and inactive rows; admin listings only.
	IncludeUnavailable bool
}

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
