package uploads

import (
	"net/http"

	"homechef-marketplace/internal/models"
	"homechef-marketplace/pkg/imagehost"

	"github.com/labstack/echo/v4"
)

// Handler relays multipart image uploads to the configured image host so the
// host API key never leaves the server.
type Handler struct {
	host imagehost.ClientInterface
}

func NewHandler(host imagehost.ClientInterface) *Handler {
	return &Handler{host: host}
}

// Upload handles POST /upload-image.
func (h *Handler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "image file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Failed to read uploaded file"})
	}
	defer file.Close()

	url, err := h.host.Upload(c.Request().Context(), fileHeader.Filename, file)
	if err != nil {
		c.Logger().Error("Handler.Upload: ", err)
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{Message: "Failed to upload image"})
	}

	return c.JSON(http.StatusOK, models.UploadResponse{URL: url})
}
