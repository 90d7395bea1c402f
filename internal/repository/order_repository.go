package repository

import (
	"context"
	"database/sql"
	"errors"

	"swapnest/internal/entity"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	orderQuery := `SELECT id, user_id, status, total, created_at, updated_at FROM orders WHERE id = ?`
	itemQuery := `SELECT id, order_id, product_id, title, quantity, price FROM order_items WHERE order_id = ?`

	var order entity.Order
	err := r.db.QueryRowContext(ctx, orderQuery, id).Scan(&order.ID, &order.UserID,
		&order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Title, &item.Quantity, &item.Price)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	return &order, rows.Err()
}

func (r *OrderRepository) listOrders(ctx context.Context, query string, args ...any) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.Total,
			&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID int) ([]entity.Order, error) {
	query := `SELECT id, user_id, status, total, created_at, updated_at FROM orders WHERE user_id = ? ORDER BY created_at DESC`
	return r.listOrders(ctx, query, userID)
}

func (r *OrderRepository) ListAllOrders(ctx context.Context) ([]entity.Order, error) {
	query := `SELECT id, user_id, status, total, created_at, updated_at FROM orders ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}

// DeleteOrder removes an order and its items. Order rows are otherwise
// append-only; this exists for the admin surface.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
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
	return tx.Commit()
}
