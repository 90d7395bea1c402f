package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swapnest/internal/service"
)

type CartHandler struct {
	cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) List(c echo.Context) error {
	claims := currentClaims(c)
	items, err := h.cart.ListItems(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) Add(c echo.Context) error {
	claims := currentClaims(c)
	var in struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	if in.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Product ID is required."})
	}
	item, err := h.cart.AddItem(c.Request().Context(), claims.UserID, in.ProductID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"detail": "Product added to your cart.",
		"item":   item,
	})
}

func (h *CartHandler) Remove(c echo.Context) error {
	claims := currentClaims(c)
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.cart.RemoveItem(c.Request().Context(), claims.UserID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Empty(c echo.Context) error {
	claims := currentClaims(c)
	if err := h.cart.Clear(c.Request().Context(), claims.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "Your cart has been emptied successfully."})
}
