package repository

import (
	"context"
	"database/sql"
	"errors"

	"swapnest/internal/entity"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db}
}

// GetOrCreateCart lazily creates an empty cart for the user.
func (r *CartRepository) GetOrCreateCart(ctx context.Context, userID int) (*entity.Cart, error) {
	cart := entity.Cart{UserID: userID}
	query := `SELECT id, user_id, created_at FROM carts WHERE user_id = ?`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO carts (user_id) VALUES (?)`, userID)
	if err != nil {
		// A concurrent request may have created the cart first; the unique
		// key on user_id makes the re-read safe.
		err2 := r.db.QueryRowContext(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
		if err2 != nil {
			return nil, err
		}
		return &cart, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	cart.ID = int(id)
	return &cart, nil
}

func (r *CartRepository) ListItems(ctx context.Context, cartID int) ([]entity.CartItem, error) {
	query := `SELECT ci.id, ci.cart_id, ci.quantity, ci.added_at, ` + productColumns + productJoins + `
		JOIN cart_items ci ON ci.product_id = p.id
		WHERE ci.cart_id = ? ORDER BY ci.added_at`
	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.CartItem
	for rows.Next() {
		var (
			item     entity.CartItem
			desc     sql.NullString
			boughtBy sql.NullInt64
		)
		p := &item.Product
		err := rows.Scan(&item.ID, &item.CartID, &item.Quantity, &item.AddedAt,
			&p.ID, &p.SellerID, &p.SellerName, &p.Title, &desc, &p.Price,
			&p.Condition, &p.Location, &p.CategoryID, &p.Category, &p.IsActive,
			&p.IsSold, &boughtBy, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		p.Description = desc.String
		if boughtBy.Valid {
			buyer := int(boughtBy.Int64)
			p.BoughtBy = &buyer
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// HasProduct reports whether the cart already holds the product.
func (r *CartRepository) HasProduct(ctx context.Context, cartID, productID int) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM cart_items WHERE cart_id = ? AND product_id = ?`
	if err := r.db.QueryRowContext(ctx, query, cartID, productID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CartRepository) AddItem(ctx context.Context, cartID, productID, quantity int) (int, error) {
	query := `INSERT INTO cart_items (cart_id, product_id, quantity) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, cartID, productID, quantity)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND cart_id = ?`, itemID, cartID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *CartRepository) ClearCart(ctx context.Context, cartID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
