package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swapnest/internal/service"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
}

func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout settles the caller's whole cart in one attempt. Clients may send
// an Idempotent-Key header to make retries safe against double-charging.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	claims := currentClaims(c)
	idempotentKey := c.Request().Header.Get("Idempotent-Key")
	order, err := h.checkout.Checkout(c.Request().Context(), claims.UserID, idempotentKey)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"detail": "Your order has been placed successfully.",
		"order":  order,
	})
}
