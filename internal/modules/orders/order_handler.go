package orders

import (
	"net/http"
	"strconv"

	"homechef-marketplace/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	svc      ServiceInterface
	validate *validator.Validate
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// Create places an order for the calling buyer.
func (h *Handler) Create(c echo.Context) error {
	userEmail := c.Get("userEmail").(string)

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	order, err := h.svc.Create(c.Request().Context(), userEmail, req)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Meal not found"})
		}
		c.Logger().Error("Handler.Create: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to place order"})
	}

	return c.JSON(http.StatusCreated, order)
}

// ListMine pages through the calling buyer's orders.
func (h *Handler) ListMine(c echo.Context) error {
	userEmail := c.Get("userEmail").(string)

	if qEmail := c.QueryParam("email"); qEmail != "" && qEmail != userEmail {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Access denied"})
	}

	page := 1
	limit := 10
	if pageStr := c.QueryParam("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	orders, total, err := h.svc.ListByUser(c.Request().Context(), userEmail, page, limit)
	if err != nil {
		c.Logger().Error("Handler.ListMine: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve orders"})
	}

	return c.JSON(http.StatusOK, models.NewListResponse(orders, total, limit))
}

// ChefOrders serves the chef's approval queue.
func (h *Handler) ChefOrders(c echo.Context) error {
	chefEmail := c.Get("userEmail").(string)

	orders, err := h.svc.ListChefOrders(c.Request().Context(), chefEmail, c.QueryParam("chefId"))
	if err != nil {
		if err == models.ErrForbidden {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Access denied"})
		}
		c.Logger().Error("Handler.ChefOrders: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus applies a chef's accept/cancel/deliver decision.
func (h *Handler) UpdateStatus(c echo.Context) error {
	chefEmail := c.Get("userEmail").(string)
	orderID := c.Param("id")

	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	order, err := h.svc.UpdateStatus(c.Request().Context(), orderID, chefEmail, req.OrderStatus)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		}
		if err == models.ErrForbidden {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "You can only manage your own orders"})
		}
		if err == models.ErrInvalidTransition {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Order cannot move to that status"})
		}
		c.Logger().Error("Handler.UpdateStatus: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update order status"})
	}

	return c.JSON(http.StatusOK, order)
}

// CreateCheckout starts the hosted payment redirect for an accepted order.
func (h *Handler) CreateCheckout(c echo.Context) error {
	userEmail := c.Get("userEmail").(string)

	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	resp, err := h.svc.CreateCheckout(c.Request().Context(), userEmail, req)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		}
		if err == models.ErrOrderNotPayable {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Your order is still pending or already paid"})
		}
		c.Logger().Error("Handler.CreateCheckout: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create checkout session"})
	}

	return c.JSON(http.StatusOK, resp)
}

// PaymentSuccess is the redirect return leg; it finalizes the order named by
// the provider's session id.
func (h *Handler) PaymentSuccess(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "session_id query parameter is required"})
	}

	if err := h.svc.FinalizePayment(c.Request().Context(), sessionID); err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "No order matches this session"})
		}
		c.Logger().Error("Handler.PaymentSuccess: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to finalize payment"})
	}

	return c.NoContent(http.StatusNoContent)
}
