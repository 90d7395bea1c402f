package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swapnest/internal/service"
)

type TransactionHandler struct {
	transactions *service.TransactionService
}

func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

func (h *TransactionHandler) List(c echo.Context) error {
	claims := currentClaims(c)
	transactions, err := h.transactions.ListTransactions(c.Request().Context(), claims.UserID, claims.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	transaction, err := h.transactions.GetTransaction(c.Request().Context(), claims.UserID, claims.Role, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, transaction)
}

func (h *TransactionHandler) Create(c echo.Context) error {
	claims := currentClaims(c)
	var in service.RecordTransactionInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	transaction, err := h.transactions.RecordTransaction(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"detail":      "Transaction recorded successfully.",
		"transaction": transaction,
	})
}
