package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapnest/internal/entity"
)

const cartSelect = `SELECT id, user_id, created_at FROM carts WHERE user_id = ?`

func TestGetOrCreateCartReturnsExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(cartSelect)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).
			AddRow(3, 1, time.Now()))

	repo := NewCartRepository(db)
	cart, err := repo.GetOrCreateCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateCartInsertsWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(cartSelect)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))
	mock.ExpectExec(`INSERT INTO carts`).WithArgs(1).
		WillReturnResult(sqlmock.NewResult(4, 1))

	repo := NewCartRepository(db)
	cart, err := repo.GetOrCreateCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateCartRecoversFromInsertRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(cartSelect)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))
	mock.ExpectExec(`INSERT INTO carts`).WithArgs(1).
		WillReturnError(errors.New("Error 1062: Duplicate entry"))
	mock.ExpectQuery(regexp.QuoteMeta(cartSelect)).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).
			AddRow(5, 1, time.Now()))

	repo := NewCartRepository(db)
	cart, err := repo.GetOrCreateCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItemScopedToCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE id = ? AND cart_id = ?`)).
		WithArgs(21, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCartRepository(db)
	err = repo.RemoveItem(context.Background(), 3, 21)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT`).WithArgs(3, 10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := NewCartRepository(db)
	has, err := repo.HasProduct(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.True(t, has)
}
