package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"swapnest/internal/entity"
)

type TransactionService struct {
	transactions transactionStore
	products     productStore
}

func NewTransactionService(transactions transactionStore, products productStore) *TransactionService {
	return &TransactionService{transactions: transactions, products: products}
}

func (s *TransactionService) ListTransactions(ctx context.Context, actorID int, actorRole string) ([]entity.Transaction, error) {
	if actorRole == entity.RoleAdmin {
		return s.transactions.ListAllTransactions(ctx)
	}
	return s.transactions.ListTransactionsByUser(ctx, actorID)
}

func (s *TransactionService) GetTransaction(ctx context.Context, actorID int, actorRole string, id int) (*entity.Transaction, error) {
	t, err := s.transactions.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != entity.RoleAdmin && actorID != t.BuyerID && actorID != t.SellerID {
		return nil, entity.ErrForbidden
	}
	return t, nil
}

type RecordTransactionInput struct {
	ProductID     int             `json:"product_id"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
}

// RecordTransaction stores a manual sale record outside the checkout flow,
// for example a cash-on-delivery deal arranged over chat. Balance-settled
// purchases go through CheckoutService instead.
func (s *TransactionService) RecordTransaction(ctx context.Context, buyerID int, in RecordTransactionInput) (*entity.Transaction, error) {
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, entity.NewValidationError("Unknown payment method.")
	}
	if !in.Amount.IsPositive() {
		return nil, entity.NewValidationError("Transaction amount must be greater than zero.")
	}

	product, err := s.products.GetProductByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive || product.IsSold {
		return nil, entity.NewBusinessError(entity.KindProductUnavailable,
			"This product is not available for purchase.")
	}
	if product.SellerID == buyerID {
		return nil, entity.NewBusinessError(entity.KindSelfPurchase,
			"You cannot record a purchase of your own product.")
	}

	t := &entity.Transaction{
		TransactionID: uuid.New().String(),
		ProductID:     in.ProductID,
		BuyerID:       buyerID,
		SellerID:      product.SellerID,
		PaymentMethod: in.PaymentMethod,
		Amount:        in.Amount,
		Status:        entity.TxSuccessful,
	}
	created, err := s.transactions.CreateTransaction(ctx, t)
	if err != nil {
		logger.Error().Err(err).Msg("Error recording transaction")
		return nil, err
	}
	return created, nil
}
