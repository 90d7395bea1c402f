package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCreditCard     = "CreditCard"
	PaymentPayPal         = "PayPal"
	PaymentCashOnDelivery = "CashOnDelivery"
	PaymentBalance        = "Balance"
)

const (
	TxPending    = "Pending"
	TxSuccessful = "Successful"
	TxFailed     = "Failed"
)

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCreditCard, PaymentPayPal, PaymentCashOnDelivery, PaymentBalance:
		return true
	}
	return false
}

// Transaction is an immutable sale record, one-to-one with a sold product.
type Transaction struct {
	ID            int             `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     int             `json:"product_id"`
	BuyerID       int             `json:"buyer_id"`
	SellerID      int             `json:"seller_id"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
