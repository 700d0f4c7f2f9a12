package users

import (
	"net/http"

	"homechef-marketplace/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for user records and role lookups.
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

// GetRole serves the role-lookup endpoint consulted by every route guard.
func (h *Handler) GetRole(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "email query parameter is required"})
	}

	role, err := h.svc.GetRoleByEmail(c.Request().Context(), email)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
		}
		c.Logger().Error("Handler.GetRole: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to resolve role"})
	}

	return c.JSON(http.StatusOK, models.RoleResponse{Role: role})
}

// GetByEmail returns a single user record.
func (h *Handler) GetByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "email query parameter is required"})
	}

	u, err := h.svc.GetByEmail(c.Request().Context(), email)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
		}
		c.Logger().Error("Handler.GetByEmail: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve user"})
	}

	return c.JSON(http.StatusOK, u)
}

// Upsert records the caller's account on first sign-in.
func (h *Handler) Upsert(c echo.Context) error {
	var req models.UpsertUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	u, err := h.svc.Upsert(c.Request().Context(), &req)
	if err != nil {
		c.Logger().Error("Handler.Upsert: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to save user"})
	}

	return c.JSON(http.StatusOK, u)
}

// ListAll returns every account for the admin dashboard.
func (h *Handler) ListAll(c echo.Context) error {
	us, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.ListAll: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to list users"})
	}
	return c.JSON(http.StatusOK, us)
}

// UpdateFraudStatus flags or clears an account.
func (h *Handler) UpdateFraudStatus(c echo.Context) error {
	userID := c.Param("id")

	var req models.UpdateFraudStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	if err := h.svc.UpdateFraudStatus(c.Request().Context(), userID, req.Status); err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
		}
		c.Logger().Error("Handler.UpdateFraudStatus: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update status"})
	}

	return c.NoContent(http.StatusNoContent)
}
