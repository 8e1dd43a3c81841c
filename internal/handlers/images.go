package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"closet-backend/internal/middleware"
	"closet-backend/internal/models"
	"closet-backend/internal/services"
)

type ImagesHandler struct {
	images *services.ImageService
}

// NewImagesHandler accepts a nil service when no image store is configured.
func NewImagesHandler(images *services.ImageService) *ImagesHandler {
	return &ImagesHandler{images: images}
}

// Upload godoc
// @Summary     Upload an item photo
// @Description Stores a base64 JPEG, PNG, GIF or WebP photo and returns a URL to
// @Description use as an item's imageUri.
// @Tags        closet
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UploadImageRequest true "Base64 image"
// @Success     201 {object} models.UploadImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /api/v1/closet/images [post]
func (h *ImagesHandler) Upload(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "image storage not configured"})
		return
	}

	owner := middleware.Owner(c)
	if owner == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Image is required"})
		return
	}

	url, err := h.images.Store(c.Request.Context(), owner, req.Image)
	switch {
	case errors.Is(err, services.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "image too large"})
		return
	case errors.Is(err, services.ErrInvalidImage), errors.Is(err, services.ErrUnsupportedImage):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid image", Message: err.Error()})
		return
	case err != nil:
		log.Printf("Failed to store image for %s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, models.UploadImageResponse{ImageURI: url})
}
