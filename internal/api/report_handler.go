package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"swapnest/internal/entity"
	"swapnest/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Create(c echo.Context) error {
	claims := currentClaims(c)
	var in service.ReportInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	report, err := h.reports.CreateReport(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"detail": "Report submitted successfully.",
		"report": report,
	})
}

func (h *ReportHandler) List(c echo.Context) error {
	claims := currentClaims(c)
	reports, err := h.reports.ListReports(c.Request().Context(), claims.UserID, claims.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	report, err := h.reports.GetReport(c.Request().Context(), claims.UserID, claims.Role, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// UpdateStatus is admin-only: moderation outcomes are never set by reporters.
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	claims := currentClaims(c)
	if claims.Role != entity.RoleAdmin {
		return respondError(c, entity.ErrForbidden)
	}
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Bad Request", "detail": "Invalid request body."})
	}
	report, err := h.reports.UpdateStatus(c.Request().Context(), claims.UserID, id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	claims := currentClaims(c)
	// Loading through GetReport enforces reporter-or-admin visibility.
	if _, err := h.reports.GetReport(c.Request().Context(), claims.UserID, claims.Role, id); err != nil {
		return respondError(c, err)
	}
	if err := h.reports.DeleteReport(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "Report deleted successfully."})
}
