package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapnest/internal/entity"
)

type fakeCartStore struct {
	cart     entity.Cart
	items    []entity.CartItem
	has      map[int]bool
	nextItem int
	added    []int
	removed  []int
	cleared  bool
}

func (f *fakeCartStore) GetOrCreateCart(ctx context.Context, userID int) (*entity.Cart, error) {
	cart := f.cart
	cart.UserID = userID
	return &cart, nil
}

func (f *fakeCartStore) ListItems(ctx context.Context, cartID int) ([]entity.CartItem, error) {
	return f.items, nil
}

func (f *fakeCartStore) HasProduct(ctx context.Context, cartID, productID int) (bool, error) {
	return f.has[productID], nil
}

func (f *fakeCartStore) AddItem(ctx context.Context, cartID, productID, quantity int) (int, error) {
	f.nextItem++
	f.added = append(f.added, productID)
	return f.nextItem, nil
}

func (f *fakeCartStore) RemoveItem(ctx context.Context, cartID, itemID int) error {
	f.removed = append(f.removed, itemID)
	return nil
}

func (f *fakeCartStore) ClearCart(ctx context.Context, cartID int) error {
	f.cleared = true
	return nil
}

type fakeProductStore struct {
	products map[int]*entity.Product
}

func (f *fakeProductStore) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductStore) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductStore) CreateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	return p, nil
}

func (f *fakeProductStore) UpdateProduct(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	return p, nil
}

func (f *fakeProductStore) SoftDeleteProduct(ctx context.Context, id int) error {
	return nil
}

func availableProduct(id, sellerID int, price int64) *entity.Product {
	return &entity.Product{
		ID:       id,
		SellerID: sellerID,
		Title:    "Lamp",
		Price:    decimal.NewFromInt(price),
		IsActive: true,
	}
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	carts := &fakeCartStore{cart: entity.Cart{ID: 3}, has: map[int]bool{}}
	products := &fakeProductStore{products: map[int]*entity.Product{5: availableProduct(5, 2, 40)}}
	svc := NewCartService(carts, products)

	item, err := svc.AddItem(context.Background(), 1, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, []int{5}, carts.added)
}

func TestAddItemRejectsNegativeQuantity(t *testing.T) {
	svc := NewCartService(&fakeCartStore{has: map[int]bool{}}, &fakeProductStore{})

	_, err := svc.AddItem(context.Background(), 1, 5, -2)
	var ve *entity.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAddItemRejectsSoldProduct(t *testing.T) {
	sold := availableProduct(5, 2, 40)
	sold.IsSold = true
	carts := &fakeCartStore{cart: entity.Cart{ID: 3}, has: map[int]bool{}}
	products := &fakeProductStore{products: map[int]*entity.Product{5: sold}}
	svc := NewCartService(carts, products)

	_, err := svc.AddItem(context.Background(), 1, 5, 1)
	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindProductUnavailable, be.Kind)
	assert.Empty(t, carts.added)
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	inactive := availableProduct(5, 2, 40)
	inactive.IsActive = false
	products := &fakeProductStore{products: map[int]*entity.Product{5: inactive}}
	svc := NewCartService(&fakeCartStore{has: map[int]bool{}}, products)

	_, err := svc.AddItem(context.Background(), 1, 5, 1)
	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindProductUnavailable, be.Kind)
}

func TestAddItemRejectsDuplicate(t *testing.T) {
	carts := &fakeCartStore{cart: entity.Cart{ID: 3}, has: map[int]bool{5: true}}
	products := &fakeProductStore{products: map[int]*entity.Product{5: availableProduct(5, 2, 40)}}
	svc := NewCartService(carts, products)

	_, err := svc.AddItem(context.Background(), 1, 5, 1)
	var be *entity.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, entity.KindDuplicateItem, be.Kind)
	assert.Empty(t, carts.added)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := NewCartService(&fakeCartStore{has: map[int]bool{}}, &fakeProductStore{products: map[int]*entity.Product{}})

	_, err := svc.AddItem(context.Background(), 1, 99, 1)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestClearEmptiesCart(t *testing.T) {
	carts := &fakeCartStore{cart: entity.Cart{ID: 3}}
	svc := NewCartService(carts, &fakeProductStore{})

	require.NoError(t, svc.Clear(context.Background(), 1))
	assert.True(t, carts.cleared)
}
