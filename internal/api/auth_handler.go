package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swapnest/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var in service.RegisterInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	user, err := h.auth.Register(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"detail": "Account created successfully.",
		"user":   user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var in loginRequest
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	if in.Email == "" || in.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Email and password are required."})
	}
	user, pair, err := h.auth.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	setAuthCookies(c, pair)
	return c.JSON(http.StatusOK, map[string]any{
		"detail":        "Login successful.",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          user,
	})
}

// Refresh rotates the token pair. The refresh token is read from the cookie
// first so browser clients never have to handle it in script.
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var in struct {
			Refresh string `json:"refresh"`
		}
		if err := c.Bind(&in); err == nil {
			token = in.Refresh
		}
	}
	if token == "" {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"refreshed": false, "detail": "Refresh token was not provided."})
	}
	_, pair, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		clearAuthCookies(c)
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"refreshed": false, "detail": "Refresh token is invalid or expired."})
	}
	setAuthCookies(c, pair)
	return c.JSON(http.StatusOK, map[string]any{
		"refreshed":     true,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	claims := currentClaims(c)
	if err := h.auth.Logout(c.Request().Context(), claims.UserID); err != nil {
		logger.Warn().Err(err).Int("user_id", claims.UserID).Msg("failed to revoke refresh session")
	}
	clearAuthCookies(c)
	return c.JSON(http.StatusOK, map[string]string{"detail": "You have been logged out successfully."})
}

// PasswordReset accepts an email and always answers the same way, so the
// endpoint cannot be used to probe which addresses have accounts.
func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&in); err != nil || in.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Email is required for password reset."})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"detail": "If an account with that email exists, password recovery instructions have been sent."})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	claims := currentClaims(c)
	user, err := h.auth.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	claims := currentClaims(c)
	var in service.UpdateProfileInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	user, err := h.auth.UpdateProfile(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"detail": "Profile updated successfully.",
		"user":   user,
	})
}
