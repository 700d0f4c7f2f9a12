package requests

import (
	"net/http"

	"homechef-marketplace/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the role-upgrade workflow.
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

// Submit files a chef/admin upgrade request for the caller.
func (h *Handler) Submit(c echo.Context) error {
	callerEmail := c.Get("userEmail").(string)

	var req models.CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	rr, err := h.svc.Submit(c.Request().Context(), callerEmail, req)
	if err != nil {
		if err == models.ErrForbidden {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "You can only request an upgrade for yourself"})
		}
		if err == models.ErrRequestPending {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "You already have a pending request"})
		}
		c.Logger().Error("Handler.Submit: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to submit request"})
	}

	return c.JSON(http.StatusCreated, rr)
}

// ListPending serves the admin's request queue.
func (h *Handler) ListPending(c echo.Context) error {
	out, err := h.svc.ListPending(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListPending: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list requests"})
	}
	return c.JSON(http.StatusOK, out)
}

// Approve grants the requested role.
func (h *Handler) Approve(c echo.Context) error {
	var req models.ApproveRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	rr, err := h.svc.Approve(c.Request().Context(), c.Param("id"), req.RequestType)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Request not found"})
		}
		if err == models.ErrConflict {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Request has already been decided or does not match"})
		}
		c.Logger().Error("Handler.Approve: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to approve request"})
	}

	return c.JSON(http.StatusOK, rr)
}

// Reject declines a request.
func (h *Handler) Reject(c echo.Context) error {
	rr, err := h.svc.Reject(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Request not found"})
		}
		if err == models.ErrConflict {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Request has already been decided"})
		}
		c.Logger().Error("Handler.Reject: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to reject request"})
	}

	return c.JSON(http.StatusOK, rr)
}
