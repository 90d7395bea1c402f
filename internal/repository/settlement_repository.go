package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"swapnest/internal/entity"
)

// SettlementRepository converts a cart into an order, per-product
// transactions, and balance transfers as a single all-or-nothing unit.
type SettlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{db}
}

type settlementItem struct {
	itemID    int
	quantity  int
	productID int
	title     string
	price     decimal.Decimal
	sellerID  int
	isActive  bool
	isSold    bool
}

func (it settlementItem) subtotal() decimal.Decimal {
	return it.price.Mul(decimal.NewFromInt(int64(it.quantity)))
}

// Settle runs the full checkout for the buyer's cart inside one database
// transaction. Precondition failures come back as BusinessError before any
// mutation; a lost race on a product's sold flag comes back as ErrConflict
// with everything rolled back.
func (r *SettlementRepository) Settle(ctx context.Context, buyerID int) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction is committed.
	defer tx.Rollback()

	items, cartID, err := lockCartItems(ctx, tx, buyerID)
	if err != nil {
		return nil, err
	}

	total, err := validateCart(items, buyerID)
	if err != nil {
		return nil, err
	}

	var balance decimal.Decimal
	err = tx.QueryRowContext(ctx, `SELECT balance FROM users WHERE id = ? FOR UPDATE`, buyerID).Scan(&balance)
	if err != nil {
		return nil, fmt.Errorf("failed to read buyer balance: %w", err)
	}
	if balance.LessThan(total) {
		return nil, entity.NewBusinessError(entity.KindInsufficientFunds,
			"Your balance is insufficient to complete the purchase. Please add funds or remove items from your cart.")
	}

	order, err := applySettlement(ctx, tx, buyerID, cartID, items, total)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return order, nil
}

// lockCartItems reads the buyer's cart joined to its products and row-locks
// the product rows, so two carts racing on the same product serialize here.
func lockCartItems(ctx context.Context, tx *sql.Tx, buyerID int) ([]settlementItem, int, error) {
	var cartID int
	err := tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = ?`, buyerID).Scan(&cartID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, 0, entity.NewBusinessError(entity.KindEmptyCart,
				"Your cart is empty. Please add products before checking out.")
		}
		return nil, 0, fmt.Errorf("failed to read cart: %w", err)
	}

	query := `SELECT ci.id, ci.quantity, p.id, p.title, p.price, p.seller_id, p.is_active, p.is_sold
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
		ORDER BY p.id
		FOR UPDATE`
	rows, err := tx.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read cart items: %w", err)
	}
	defer rows.Close()

	var items []settlementItem
	for rows.Next() {
		var it settlementItem
		err := rows.Scan(&it.itemID, &it.quantity, &it.productID, &it.title,
			&it.price, &it.sellerID, &it.isActive, &it.isSold)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, cartID, rows.Err()
}

// validateCart checks the ordered preconditions and returns the order total.
func validateCart(items []settlementItem, buyerID int) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, entity.NewBusinessError(entity.KindEmptyCart,
			"Your cart is empty. Please add products before checking out.")
	}

	var ownTitles []string
	for _, it := range items {
		if it.sellerID == buyerID {
			ownTitles = append(ownTitles, it.title)
		}
	}
	if len(ownTitles) > 0 {
		return decimal.Zero, entity.NewBusinessError(entity.KindSelfPurchase,
			fmt.Sprintf("You cannot purchase your own products: %s. Please remove these items from your cart.",
				strings.Join(ownTitles, ", ")))
	}

	// Staleness and price re-check at settlement time; what passed at
	// add-to-cart time is not trusted here.
	var staleTitles []string
	for _, it := range items {
		if it.isSold || !it.isActive || !it.price.IsPositive() {
			staleTitles = append(staleTitles, it.title)
		}
	}
	if len(staleTitles) > 0 {
		return decimal.Zero, entity.NewBusinessError(entity.KindProductUnavailable,
			fmt.Sprintf("These products are no longer available: %s. Please remove them from your cart.",
				strings.Join(staleTitles, ", ")))
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.subtotal())
	}
	return total, nil
}

// applySettlement performs the mutation phase. All balance arithmetic runs
// server-side; application code never computes a new balance from a read.
func applySettlement(ctx context.Context, tx *sql.Tx, buyerID, cartID int, items []settlementItem, total decimal.Decimal) (*entity.Order, error) {
	_, err := tx.ExecContext(ctx, `UPDATE users SET balance = balance - ? WHERE id = ?`, total, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to debit buyer: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, status, total) VALUES (?, ?, ?)`,
		buyerID, entity.OrderPending, total)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, title, quantity, price) VALUES `
	var values []any
	for _, it := range items {
		itemQuery += "(?, ?, ?, ?, ?),"
		values = append(values, orderID, it.productID, it.title, it.quantity, it.price)
	}
	itemQuery = itemQuery[:len(itemQuery)-1]
	if _, err := tx.ExecContext(ctx, itemQuery, values...); err != nil {
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}

	order := &entity.Order{
		ID:     int(orderID),
		UserID: buyerID,
		Status: entity.OrderPending,
		Total:  total,
	}

	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET balance = balance + ? WHERE id = ?`,
			it.subtotal(), it.sellerID); err != nil {
			return nil, fmt.Errorf("failed to credit seller: %w", err)
		}

		// Guard on is_sold keeps the false->true transition one-shot even if
		// another transaction slipped in; zero rows means we lost the race.
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET is_sold = TRUE, bought_by = ? WHERE id = ? AND is_sold = FALSE AND is_active = TRUE`,
			buyerID, it.productID)
		if err != nil {
			return nil, fmt.Errorf("failed to mark product sold: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, entity.ErrConflict
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (transaction_id, product_id, buyer_id, seller_id, payment_method, amount, status)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), it.productID, buyerID, it.sellerID,
			entity.PaymentBalance, it.subtotal(), entity.TxSuccessful); err != nil {
			return nil, fmt.Errorf("failed to insert transaction: %w", err)
		}

		order.Items = append(order.Items, entity.OrderItem{
			OrderID:   order.ID,
			ProductID: it.productID,
			Title:     it.title,
			Quantity:  it.quantity,
			Price:     it.price,
		})
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return order, nil
}
