package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapnest/internal/entity"
	"swapnest/internal/service"
)

func callRespondError(t *testing.T, err error) (int, map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, respondError(c, err))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestRespondErrorBusinessRule(t *testing.T) {
	code, body := callRespondError(t,
		entity.NewBusinessError(entity.KindInsufficientFunds, "Your balance is insufficient."))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, entity.KindInsufficientFunds, body["error"])
	assert.Equal(t, "Your balance is insufficient.", body["detail"])
}

func TestRespondErrorValidation(t *testing.T) {
	code, body := callRespondError(t, entity.NewValidationError("Title is required."))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Bad Request", body["error"])
}

func TestRespondErrorSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{entity.ErrNotFound, http.StatusNotFound},
		{entity.ErrForbidden, http.StatusForbidden},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrInvalidToken, http.StatusUnauthorized},
		{service.ErrAccountInactive, http.StatusForbidden},
	}
	for _, tc := range cases {
		code, _ := callRespondError(t, tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestRespondErrorUnknownIsOpaque(t *testing.T) {
	code, body := callRespondError(t, errors.New("dial tcp: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotContains(t, body["detail"], "dial tcp")
}

func adminContext(t *testing.T, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256,
		&service.JwtCustomClaims{UserID: 1, Role: role}))
	return c, rec
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	c, rec := adminContext(t, entity.RoleAdmin)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	require.NoError(t, RequireAdmin(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsUser(t *testing.T) {
	c, rec := adminContext(t, entity.RoleUser)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	require.NoError(t, RequireAdmin(next)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
