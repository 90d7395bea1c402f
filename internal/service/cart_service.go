package service

import (
	"context"

	"swapnest/internal/entity"
)

type CartService struct {
	carts    cartStore
	products productStore
}

func NewCartService(carts cartStore, products productStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// ListItems returns the caller's cart contents, creating an empty cart on
// first access.
func (s *CartService) ListItems(ctx context.Context, userID int) ([]entity.CartItem, error) {
	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.carts.ListItems(ctx, cart.ID)
}

// AddItem stages a product for purchase. Sold or inactive products and
// duplicates are rejected; a definitive re-check happens at settlement.
func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity int) (*entity.CartItem, error) {
	if quantity < 0 {
		return nil, entity.NewValidationError("Quantity must be greater than zero.")
	}
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.IsSold {
		return nil, entity.NewBusinessError(entity.KindProductUnavailable,
			"Cannot add a sold product to the cart.")
	}
	if !product.IsActive {
		return nil, entity.NewBusinessError(entity.KindProductUnavailable,
			"This product is not available for purchase.")
	}

	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.carts.HasProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.NewBusinessError(entity.KindDuplicateItem,
			"This product is already in your cart.")
	}

	itemID, err := s.carts.AddItem(ctx, cart.ID, productID, quantity)
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding product %d to cart %d", productID, cart.ID)
		return nil, err
	}

	return &entity.CartItem{
		ID:       itemID,
		CartID:   cart.ID,
		Quantity: quantity,
		Product:  *product,
	}, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int) error {
	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	// Scoping the delete to the caller's cart doubles as the ownership check.
	return s.carts.RemoveItem(ctx, cart.ID, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID int) error {
	cart, err := s.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.carts.ClearCart(ctx, cart.ID)
}
