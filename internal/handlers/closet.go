package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"closet-backend/internal/closet"
	"closet-backend/internal/middleware"
	"closet-backend/internal/models"
)

type ClosetHandler struct {
	registry *closet.Registry
}

func NewClosetHandler(registry *closet.Registry) *ClosetHandler {
	return &ClosetHandler{registry: registry}
}

// ListItems godoc
// @Summary     List closet items
// @Description Returns the caller's items, newest first
// @Tags        closet
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ItemsResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/v1/closet/items [get]
func (h *ClosetHandler) ListItems(c *gin.Context) {
	cl, ok := h.open(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.ItemsResponse{Items: cl.Items()})
}

// AddItem godoc
// @Summary     Add a closet item
// @Description Adds an item to the head of the caller's closet. Name defaults to
// @Description "<color> <category>" and season to "All".
// @Tags        closet
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.AddItemRequest true "Item"
// @Success     201 {object} models.ClosetItem
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/v1/closet/items [post]
func (h *ClosetHandler) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	cl, ok := h.open(c)
	if !ok {
		return
	}

	item, err := cl.Add(c.Request.Context(), req)
	switch {
	case errors.Is(err, closet.ErrInvalidCategory), errors.Is(err, closet.ErrInvalidSeason):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid item", Message: err.Error()})
		return
	case err != nil:
		log.Printf("Failed to add closet item: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GenerateOutfit godoc
// @Summary     Generate an outfit
// @Description Picks one random item per outfit slot that has candidates and keeps
// @Description the result as the latest outfit.
// @Tags        closet
// @Produce     json
// @Security    Bearer
// @Success     201 {object} models.Outfit
// @Failure     401 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Router      /api/v1/closet/outfits [post]
func (h *ClosetHandler) GenerateOutfit(c *gin.Context) {
	cl, ok := h.open(c)
	if !ok {
		return
	}

	outfit, err := cl.GenerateOutfit()
	switch {
	case errors.Is(err, closet.ErrNoItems):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "closet is empty", Message: "add some items first"})
		return
	case errors.Is(err, closet.ErrNoEligibleCategories):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "no outfit items", Message: "add tops, bottoms, shoes, outerwear or accessories"})
		return
	case err != nil:
		log.Printf("Failed to generate outfit: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to generate outfit"})
		return
	}

	c.JSON(http.StatusCreated, outfit)
}

// LatestOutfit godoc
// @Summary     Latest outfit
// @Tags        closet
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.Outfit
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/v1/closet/outfits/latest [get]
func (h *ClosetHandler) LatestOutfit(c *gin.Context) {
	cl, ok := h.open(c)
	if !ok {
		return
	}

	outfit, found := cl.LatestOutfit()
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no outfit generated yet"})
		return
	}

	c.JSON(http.StatusOK, outfit)
}

func (h *ClosetHandler) open(c *gin.Context) (*closet.Closet, bool) {
	owner := middleware.Owner(c)
	if owner == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return nil, false
	}

	cl, err := h.registry.For(c.Request.Context(), owner)
	if err != nil {
		log.Printf("Failed to open closet for %s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load closet"})
		return nil, false
	}
	return cl, true
}
