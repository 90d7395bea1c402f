package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapnest/internal/entity"
)

const (
	cartQuery     = `SELECT id FROM carts WHERE user_id = ?`
	lockQuery     = `FROM cart_items ci`
	balanceQuery  = `SELECT balance FROM users WHERE id = ? FOR UPDATE`
	debitQuery    = `UPDATE users SET balance = balance - ? WHERE id = ?`
	creditQuery   = `UPDATE users SET balance = balance + ? WHERE id = ?`
	orderInsert   = `INSERT INTO orders`
	itemsInsert   = `INSERT INTO order_items`
	soldUpdate    = `UPDATE products SET is_sold = TRUE, bought_by = ? WHERE id = ? AND is_sold = FALSE AND is_active = TRUE`
	txInsert      = `INSERT INTO transactions`
	cartDelete    = `DELETE FROM cart_items WHERE cart_id = ?`
)

func cartItemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"ci.id", "ci.quantity", "p.id", "p.title", "p.price", "p.seller_id", "p.is_active", "p.is_sold"})
}

func TestSettleHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(cartQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(lockQuery).WithArgs(3).
		WillReturnRows(cartItemRows().
			AddRow(21, 1, 10, "Desk lamp", "50", 2, true, false).
			AddRow(22, 1, 11, "Bookshelf", "30", 4, true, false))
	mock.ExpectQuery(regexp.QuoteMeta(balanceQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100"))

	mock.ExpectExec(regexp.QuoteMeta(debitQuery)).WithArgs("80", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(orderInsert).WithArgs(1, entity.OrderPending, "80").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(itemsInsert).
		WithArgs(int64(7), 10, "Desk lamp", 1, "50", int64(7), 11, "Bookshelf", 1, "30").
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec(regexp.QuoteMeta(creditQuery)).WithArgs("50", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(soldUpdate)).WithArgs(1, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(txInsert).
		WithArgs(sqlmock.AnyArg(), 10, 1, 2, entity.PaymentBalance, "50", entity.TxSuccessful).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(regexp.QuoteMeta(creditQuery)).WithArgs("30", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(soldUpdate)).WithArgs(1, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(txInsert).
		WithArgs(sqlmock.AnyArg(), 11, 1, 4, entity.PaymentBalance, "30", entity.TxSuccessful).
		WillReturnResult(sqlmock.NewResult(2, 1))

	mock.ExpectExec(regexp.QuoteMeta(cartDelete)).WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewSettlementRepository(db)
	order, err := repo.Settle(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 7, order.ID)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, "80", order.Total.String())
	require.Len(t, order.Items, 2)
	assert.Equal(t, 10, order.Items[0].ProductID)
	assert.Equal(t, "50", order.Items[0].Price.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleNoCartRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(cartQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	repo := NewSettlementRepository(db)
	_, err = repo.Settle(context.Background(), 1)

	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindEmptyCart, be.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleEmptyCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(cartQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(lockQuery).WithArgs(3).WillReturnRows(cartItemRows())
	mock.ExpectRollback()

	repo := NewSettlementRepository(db)
	_, err = repo.Settle(context.Background(), 1)

	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindEmptyCart, be.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleSelfPurchase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(cartQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(lockQuery).WithArgs(3).
		WillReturnRows(cartItemRows().
			AddRow(21, 1, 10, "Desk lamp", "50", 1, true, false))
	mock.ExpectRollback()

	repo := NewSettlementRepository(db)
	_, err = repo.Settle(context.Background(), 1)

	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindSelfPurchase, be.Kind)
	assert.Contains(t, be.Detail, "Desk lamp")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleStaleProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(cartQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(lockQuery).WithArgs(3).
		WillReturnRows(cartItemRows().
			AddRow(21, 1, 10, "Desk lamp", "50", 2, true, true))
	mock.ExpectRollback()

	repo := NewSettlementRepository(db)
	_, err = repo.Settle(context.Background(), 1)

	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindProductUnavailable, be.Kind)
	assert.Contains(t, be.Detail, "Desk lamp")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleInsufficientFunds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(cartQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(lockQuery).WithArgs(3).
		WillReturnRows(cartItemRows().
			AddRow(21, 1, 10, "Desk lamp", "50", 2, true, false).
			AddRow(22, 1, 11, "Bookshelf", "30", 4, true, false))
	mock.ExpectQuery(regexp.QuoteMeta(balanceQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("20"))
	mock.ExpectRollback()

	repo := NewSettlementRepository(db)
	_, err = repo.Settle(context.Background(), 1)

	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindInsufficientFunds, be.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettleLostSoldRaceRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(cartQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(lockQuery).WithArgs(3).
		WillReturnRows(cartItemRows().
			AddRow(21, 1, 10, "Desk lamp", "50", 2, true, false))
	mock.ExpectQuery(regexp.QuoteMeta(balanceQuery)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("100"))

	mock.ExpectExec(regexp.QuoteMeta(debitQuery)).WithArgs("50", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(orderInsert).WithArgs(1, entity.OrderPending, "50").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(itemsInsert).
		WithArgs(int64(7), 10, "Desk lamp", 1, "50").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(creditQuery)).WithArgs("50", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The guarded update reports zero rows: another buyer won the race.
	mock.ExpectExec(regexp.QuoteMeta(soldUpdate)).WithArgs(1, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewSettlementRepository(db)
	_, err = repo.Settle(context.Background(), 1)

	assert.ErrorIs(t, err, entity.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
