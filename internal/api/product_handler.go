package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"swapnest/internal/entity"
	"swapnest/internal/service"
)

type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(c echo.Context) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	products, err := h.products.ListProducts(c.Request().Context(), claims.UserID, claims.Role, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	product, err := h.products.GetProduct(c.Request().Context(), claims.UserID, claims.Role, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	claims := currentClaims(c)
	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	product, err := h.products.CreateProduct(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"detail":  "Product listed successfully.",
		"product": product,
	})
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	product, err := h.products.UpdateProduct(c.Request().Context(), claims.UserID, claims.Role, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"detail":  "Product updated successfully.",
		"product": product,
	})
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	if err := h.products.DeleteProduct(c.Request().Context(), claims.UserID, claims.Role, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "Product removed successfully."})
}

// ListImages returns a listing's gallery; the product query parameter is
// required so clients cannot dump the whole table.
func (h *ProductHandler) ListImages(c echo.Context) error {
	productID, err := strconv.Atoi(c.QueryParam("product"))
	if err != nil || productID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "A product query parameter is required."})
	}
	images, err := h.products.ListImages(c.Request().Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, images)
}

func (h *ProductHandler) AddImage(c echo.Context) error {
	claims := currentClaims(c)
	var in service.ProductImageInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	if in.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Product ID is required."})
	}
	image, err := h.products.AddImage(c.Request().Context(), claims.UserID, claims.Role, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, image)
}

func (h *ProductHandler) UpdateImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	var in service.ProductImageInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	image, err := h.products.UpdateImage(c.Request().Context(), claims.UserID, claims.Role, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, image)
}

func (h *ProductHandler) DeleteImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	if err := h.products.DeleteImage(c.Request().Context(), claims.UserID, claims.Role, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseProductFilter(c echo.Context) (entity.ProductFilter, error) {
	filter := entity.ProductFilter{
		Title:     c.QueryParam("title"),
		Category:  c.QueryParam("category"),
		Location:  c.QueryParam("location"),
		Condition: c.QueryParam("condition"),
	}
	if raw := c.QueryParam("min_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, entity.NewValidationError("min_price must be a number.")
		}
		filter.MinPrice = price
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, entity.NewValidationError("max_price must be a number.")
		}
		filter.MaxPrice = price
	}
	return filter, nil
}

// pathID rejects non-numeric path segments with a not-found answer, the same
// response a missing row would produce.
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, entity.ErrNotFound
	}
	return id, nil
}
