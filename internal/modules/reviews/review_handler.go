package reviews

import (
	"net/http"
	"strconv"

	"homechef-marketplace/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for reviews.
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

// ListForMeal returns all reviews for one meal.
func (h *Handler) ListForMeal(c echo.Context) error {
	reviews, err := h.svc.ListForMeal(c.Request().Context(), c.Param("foodId"))
	if err != nil {
		c.Logger().Error("Handler.ListForMeal: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve reviews"})
	}
	return c.JSON(http.StatusOK, reviews)
}

// Create posts a review on behalf of the caller.
func (h *Handler) Create(c echo.Context) error {
	reviewerEmail := c.Get("userEmail").(string)

	var req models.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	rv, err := h.svc.Create(c.Request().Context(), reviewerEmail, req)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Reviewer account not found"})
		}
		c.Logger().Error("Handler.Create: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to post review"})
	}

	return c.JSON(http.StatusCreated, rv)
}

// ListAll is the multi-purpose review listing: by reviewer name (paged), by
// reviewer email (plain list), or the latest N for the landing carousel.
func (h *Handler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	if name := c.QueryParam("name"); name != "" {
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
		reviews, total, err := h.svc.ListByName(ctx, name, page, limit)
		if err != nil {
			c.Logger().Error("Handler.ListAll: ", err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve reviews"})
		}
		return c.JSON(http.StatusOK, models.NewListResponse(reviews, total, limit))
	}

	if email := c.QueryParam("email"); email != "" {
		reviews, err := h.svc.ListByEmail(ctx, email)
		if err != nil {
			c.Logger().Error("Handler.ListAll: ", err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve reviews"})
		}
		return c.JSON(http.StatusOK, reviews)
	}

	limit := 10
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	reviews, err := h.svc.ListLatest(ctx, limit)
	if err != nil {
		c.Logger().Error("Handler.ListAll: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve reviews"})
	}
	return c.JSON(http.StatusOK, reviews)
}

// Update edits the caller's own review.
func (h *Handler) Update(c echo.Context) error {
	reviewerEmail := c.Get("userEmail").(string)

	var req models.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	rv, err := h.svc.Update(c.Request().Context(), c.Param("id"), reviewerEmail, req)
	if err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Review not found"})
		}
		if err == models.ErrForbidden {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "You can only edit your own reviews"})
		}
		c.Logger().Error("Handler.Update: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update review"})
	}

	return c.JSON(http.StatusOK, rv)
}

// Delete removes the caller's own review.
func (h *Handler) Delete(c echo.Context) error {
	reviewerEmail := c.Get("userEmail").(string)

	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), reviewerEmail); err != nil {
		if err == models.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Review not found"})
		}
		if err == models.ErrForbidden {
			return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "You can only delete your own reviews"})
		}
		c.Logger().Error("Handler.Delete: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete review"})
	}

	return c.NoContent(http.StatusNoContent)
}
