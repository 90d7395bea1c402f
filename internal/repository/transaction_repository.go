package repository

import (
	"context"
	"database/sql"
	"errors"

	"swapnest/internal/entity"
)

const transactionColumns = `id, transaction_id, product_id, buyer_id, seller_id, payment_method, amount, status, created_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db}
}

func (r *TransactionRepository) GetTransactionByID(ctx context.Context, id int) (*entity.Transaction, error) {
	var t entity.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.TransactionID, &t.ProductID,
		&t.BuyerID, &t.SellerID, &t.PaymentMethod, &t.Amount, &t.Status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) listTransactions(ctx context.Context, query string, args ...any) ([]entity.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		err := rows.Scan(&t.ID, &t.TransactionID, &t.ProductID, &t.BuyerID,
			&t.SellerID, &t.PaymentMethod, &t.Amount, &t.Status, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// ListTransactionsByUser returns transactions where the user is buyer or seller.
func (r *TransactionRepository) ListTransactionsByUser(ctx context.Context, userID int) ([]entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE buyer_id = ? OR seller_id = ? ORDER BY created_at DESC`
	return r.listTransactions(ctx, query, userID, userID)
}

func (r *TransactionRepository) ListAllTransactions(ctx context.Context) ([]entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`
	return r.listTransactions(ctx, query)
}

func (r *TransactionRepository) CreateTransaction(ctx context.Context, t *entity.Transaction) (*entity.Transaction, error) {
	query := `INSERT INTO transactions (transaction_id, product_id, buyer_id, seller_id, payment_method, amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, t.TransactionID, t.ProductID, t.BuyerID,
		t.SellerID, t.PaymentMethod, t.Amount, t.Status)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	t.ID = int(id)
	return t, nil
}
