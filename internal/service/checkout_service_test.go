package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapnest/internal/entity"
)

type fakeSettler struct {
	results []settleResult
	calls   int
}

type settleResult struct {
	order *entity.Order
	err   error
}

func (f *fakeSettler) Settle(ctx context.Context, buyerID int) (*entity.Order, error) {
	res := f.results[f.calls]
	f.calls++
	return res.order, res.err
}

func TestCheckoutSuccess(t *testing.T) {
	order := &entity.Order{ID: 7, UserID: 1, Status: entity.OrderPending, Total: decimal.NewFromInt(80)}
	settler := &fakeSettler{results: []settleResult{{order: order}}}
	svc := NewCheckoutService(settler, nil, nil)

	got, err := svc.Checkout(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, 1, settler.calls)
}

func TestCheckoutRetriesOnceOnConflict(t *testing.T) {
	order := &entity.Order{ID: 9, UserID: 1, Total: decimal.NewFromInt(50)}
	settler := &fakeSettler{results: []settleResult{
		{err: entity.ErrConflict},
		{order: order},
	}}
	svc := NewCheckoutService(settler, nil, nil)

	got, err := svc.Checkout(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, 9, got.ID)
	assert.Equal(t, 2, settler.calls)
}

func TestCheckoutSecondConflictBecomesUnavailable(t *testing.T) {
	settler := &fakeSettler{results: []settleResult{
		{err: entity.ErrConflict},
		{err: entity.ErrConflict},
	}}
	svc := NewCheckoutService(settler, nil, nil)

	_, err := svc.Checkout(context.Background(), 1, "")
	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindProductUnavailable, be.Kind)
	assert.Equal(t, 2, settler.calls)
}

func TestCheckoutBusinessErrorPassesThroughWithoutRetry(t *testing.T) {
	settler := &fakeSettler{results: []settleResult{
		{err: entity.NewBusinessError(entity.KindInsufficientFunds, "Insufficient balance to complete this purchase.")},
	}}
	svc := NewCheckoutService(settler, nil, nil)

	_, err := svc.Checkout(context.Background(), 1, "")
	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindInsufficientFunds, be.Kind)
	assert.Equal(t, 1, settler.calls)
}

func TestCheckoutStorageErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	settler := &fakeSettler{results: []settleResult{{err: boom}}}
	svc := NewCheckoutService(settler, nil, nil)

	_, err := svc.Checkout(context.Background(), 1, "")
	assert.ErrorIs(t, err, boom)
}

type fakeIdempotencyGuard struct {
	fresh    bool
	claimed  []string
	released []string
}

func (f *fakeIdempotencyGuard) Claim(ctx context.Context, key string) (bool, error) {
	f.claimed = append(f.claimed, key)
	return f.fresh, nil
}

func (f *fakeIdempotencyGuard) Release(ctx context.Context, key string) {
	f.released = append(f.released, key)
}

func TestCheckoutDuplicateKeySkipsSettlement(t *testing.T) {
	settler := &fakeSettler{}
	svc := NewCheckoutService(settler, nil, nil)
	guard := &fakeIdempotencyGuard{fresh: false}
	svc.idem = guard

	_, err := svc.Checkout(context.Background(), 1, "req-42")
	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindDuplicateRequest, be.Kind)
	assert.Equal(t, 0, settler.calls)
	assert.Equal(t, []string{"req-42"}, guard.claimed)
}

func TestCheckoutReleasesKeyWhenSettlementFails(t *testing.T) {
	settler := &fakeSettler{results: []settleResult{
		{err: entity.NewBusinessError(entity.KindEmptyCart, "Your cart is empty.")},
	}}
	svc := NewCheckoutService(settler, nil, nil)
	guard := &fakeIdempotencyGuard{fresh: true}
	svc.idem = guard

	_, err := svc.Checkout(context.Background(), 1, "req-42")
	require.Error(t, err)
	assert.Equal(t, []string{"req-42"}, guard.released)
}

func TestCheckoutKeepsKeyAfterSuccess(t *testing.T) {
	order := &entity.Order{ID: 7, UserID: 1, Total: decimal.NewFromInt(80)}
	settler := &fakeSettler{results: []settleResult{{order: order}}}
	svc := NewCheckoutService(settler, nil, nil)
	guard := &fakeIdempotencyGuard{fresh: true}
	svc.idem = guard

	_, err := svc.Checkout(context.Background(), 1, "req-42")
	require.NoError(t, err)
	assert.Equal(t, []string{"req-42"}, guard.claimed)
	assert.Empty(t, guard.released)
}
