package stats

import (
	"net/http"

	"homechef-marketplace/internal/models"

	"github.com/labstack/echo/v4"
)

// Handler holds the dashboard HTTP handlers.
type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// TotalPayments handles GET /total-payments.
func (h *Handler) TotalPayments(c echo.Context) error {
	total, err := h.service.TotalPayments(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch total payments"})
	}
	return c.JSON(http.StatusOK, models.TotalResponse{Total: total})
}

// TotalUsers handles GET /total-users.
func (h *Handler) TotalUsers(c echo.Context) error {
	count, err := h.service.TotalUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch total users"})
	}
	return c.JSON(http.StatusOK, models.TotalResponse{Total: float64(count)})
}

// PendingOrdersCount handles GET /pending-orders-count.
func (h *Handler) PendingOrdersCount(c echo.Context) error {
	count, err := h.service.PendingOrdersCount(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch pending orders count"})
	}
	return c.JSON(http.StatusOK, models.CountResponse{Count: count})
}

// DeliveredOrdersCount handles GET /delivered-orders-count.
func (h *Handler) DeliveredOrdersCount(c echo.Context) error {
	count, err := h.service.DeliveredOrdersCount(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch delivered orders count"})
	}
	return c.JSON(http.StatusOK, models.CountResponse{Count: count})
}

// ChartData handles GET /statistics-chart-data.
func (h *Handler) ChartData(c echo.Context) error {
	data, err := h.service.ChartData(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch chart data"})
	}
	return c.JSON(http.StatusOK, data)
}
