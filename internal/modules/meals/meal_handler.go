package meals

import (
	"net/http"
	"strconv"

	"homechef-marketplace/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the meal catalog.
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

// ListAll serves the public catalog with paging, search, and sorting.
func (h *Handler) ListAll(c echo.Context) error {
	q := models.MealListQuery{
		Page:   1,
		Limit:  10,
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
	}
	if pageStr := c.QueryParam("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			q.Page = p
		}
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			q.Limit = l
		}
	}

	meals, total, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		c.Logger().Error("Handler.ListAll: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve meals"})
	}

	return c.JSON(http.StatusOK, models.NewListResponse(meals, total, q.Limit))
}

// Get serves a single meal detail.
func (h *Handler) Get(c echo.Context) error {
	meal, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Meal not found"})
		}
		c.Logger().Error("Handler.Get: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve meal"})
	}
	return c.JSON(http.StatusOK, meal)
}

// Create adds a meal for the calling chef.
func (h *Handler) Create(c echo.Context) error {
	chefEmail := c.Get("userEmail").(string)

	var req models.CreateMealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	meal, err := h.svc.Create(c.Request().Context(), chefEmail, req)
	if err != nil {
		c.Logger().Error("Handler.Create: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create meal"})
	}

	return c.JSON(http.StatusCreated, meal)
}

// Update edits one of the calling chef's meals.
func (h *Handler) Update(c echo.Context) error {
	chefEmail := c.Get("userEmail").(string)

	var req models.UpdateMealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	meal, err := h.svc.Update(c.Request().Context(), c.Param("id"), chefEmail, req)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Meal not found"})
		}
		if err == models.ErrForbidden {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "You can only edit your own meals"})
		}
		c.Logger().Error("Handler.Update: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update meal"})
	}

	return c.JSON(http.StatusOK, meal)
}

// Delete removes one of the calling chef's meals.
func (h *Handler) Delete(c echo.Context) error {
	chefEmail := c.Get("userEmail").(string)

	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), chefEmail); err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Meal not found"})
		}
		if err == models.ErrForbidden {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "You can only delete your own meals"})
		}
		c.Logger().Error("Handler.Delete: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete meal"})
	}

	return c.NoContent(http.StatusNoContent)
}

// ListMine serves the chef dashboard's own-meals table.
func (h *Handler) ListMine(c echo.Context) error {
	chefEmail := c.Get("userEmail").(string)

	// The client passes its email explicitly; it must match the token owner.
	if qEmail := c.QueryParam("email"); qEmail != "" && qEmail != chefEmail {
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

	meals, total, err := h.svc.ListByChef(c.Request().Context(), chefEmail, page, limit)
	if err != nil {
		c.Logger().Error("Handler.ListMine: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve meals"})
	}

	return c.JSON(http.StatusOK, models.NewListResponse(meals, total, limit))
}
