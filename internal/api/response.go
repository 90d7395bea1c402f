package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"swapnest/internal/entity"
	"swapnest/internal/service"
)

// respondError maps the domain error taxonomy onto HTTP. Business-rule
// rejections carry their machine-readable kind in the "error" field.
func respondError(c echo.Context, err error) error {
	var be *entity.BusinessError
	if errors.As(err, &be) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": be.Kind, "detail": be.Detail})
	}
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": ve.Detail})
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Authentication Failed", "detail": "Incorrect email or password. Please try again."})
	case errors.Is(err, service.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Authentication Failed", "detail": "Invalid or expired token."})
	case errors.Is(err, service.ErrAccountInactive):
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "Account Inactive", "detail": "Your account is currently inactive. Please contact support."})
	case errors.Is(err, entity.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "Unauthorized", "detail": "You are not allowed to perform this action."})
	case errors.Is(err, entity.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Not Found", "detail": "The requested resource does not exist."})
	}

	// Storage faults and everything unexpected: generic, never partial state.
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": "Internal Server Error", "detail": "Something went wrong. Please try again later."})
}
