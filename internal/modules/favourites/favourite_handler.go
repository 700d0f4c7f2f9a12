package favourites

import (
	"net/http"

	"homechef-marketplace/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for favourites.
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

// List returns the caller's bookmarks.
func (h *Handler) List(c echo.Context) error {
	userEmail := c.Get("userEmail").(string)

	if qEmail := c.QueryParam("userEmail"); qEmail != "" && qEmail != userEmail {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Access denied"})
	}

	favs, err := h.svc.List(c.Request().Context(), userEmail)
	if err != nil {
		c.Logger().Error("Handler.List: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve favourites"})
	}
	return c.JSON(http.StatusOK, favs)
}

// Add bookmarks a meal for the caller.
func (h *Handler) Add(c echo.Context) error {
	userEmail := c.Get("userEmail").(string)

	var req models.AddFavouriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	fav, err := h.svc.Add(c.Request().Context(), userEmail, req.MealID)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Meal not found"})
		}
		if err == models.ErrConflict {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Meal is already in your favourites"})
		}
		c.Logger().Error("Handler.Add: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to add favourite"})
	}

	return c.JSON(http.StatusCreated, fav)
}

// Remove deletes one of the caller's bookmarks.
func (h *Handler) Remove(c echo.Context) error {
	userEmail := c.Get("userEmail").(string)

	if qEmail := c.QueryParam("userEmail"); qEmail != "" && qEmail != userEmail {
		return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Access denied"})
	}

	mealID := c.QueryParam("mealId")
	if mealID == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "mealId query parameter is required"})
	}

	if err := h.svc.Remove(c.Request().Context(), userEmail, mealID); err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Favourite not found"})
		}
		c.Logger().Error("Handler.Remove: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to remove favourite"})
	}

	return c.NoContent(http.StatusNoContent)
}
