package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swapnest/internal/service"
)

// AdminHandler exposes the moderation surface: full user management and an
// unfiltered product listing that includes sold and deactivated items.
type AdminHandler struct {
	users    *service.UserService
	products *service.ProductService
}

func NewAdminHandler(users *service.UserService, products *service.ProductService) *AdminHandler {
	return &AdminHandler{users: users, products: products}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	var in service.AdminUserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	user, err := h.users.CreateUser(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"detail": "User created successfully.",
		"user":   user,
	})
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in service.AdminUserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	user, err := h.users.UpdateUser(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"detail": "User updated successfully.",
		"user":   user,
	})
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "User deleted successfully."})
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	products, err := h.products.AdminListProducts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}
