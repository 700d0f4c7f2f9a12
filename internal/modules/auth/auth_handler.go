package auth

import (
	"net/http"

	"homechef-marketplace/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for account lifecycle.
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

func (h *Handler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	resp, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		if err == models.ErrEmailTaken {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "An account with this email already exists"})
		}
		c.Logger().Error("Handler.Register: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create account"})
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	resp, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		if err == models.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid email or password"})
		}
		c.Logger().Error("Handler.Login: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to sign in"})
	}

	return c.JSON(http.StatusOK, resp)
}

// GoogleLogin redirects the browser to the provider's consent screen.
func (h *Handler) GoogleLogin(c echo.Context) error {
	state := uuid.NewString()
	// State lives in a short-lived cookie so the callback can verify it.
	c.SetCookie(&http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusTemporaryRedirect, h.svc.GoogleLoginURL(state))
}

// GoogleCallback completes the hosted sign-in leg.
func (h *Handler) GoogleCallback(c echo.Context) error {
	cookie, err := c.Cookie("oauth_state")
	if err != nil || cookie.Value == "" || cookie.Value != c.QueryParam("state") {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid OAuth state"})
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Missing authorization code"})
	}

	resp, err := h.svc.GoogleCallback(c.Request().Context(), code)
	if err != nil {
		c.Logger().Error("Handler.GoogleCallback: ", err)
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: "Failed to sign in with Google"})
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdateProfile changes the caller's display name and photo.
func (h *Handler) UpdateProfile(c echo.Context) error {
	email := c.Get("userEmail").(string)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	if err := h.svc.UpdateProfile(c.Request().Context(), email, req); err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
		}
		c.Logger().Error("Handler.UpdateProfile: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update profile"})
	}

	return c.NoContent(http.StatusNoContent)
}
