package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"closet-backend/internal/models"
	"closet-backend/internal/search"
)

type SearchHandler struct {
	aggregator *search.Aggregator
}

func NewSearchHandler(aggregator *search.Aggregator) *SearchHandler {
	return &SearchHandler{aggregator: aggregator}
}

// Search godoc
// @Summary     Search purchasable products
// @Description Looks up a JAN barcode on Rakuten and/or searches Google Shopping and
// @Description Rakuten by keyword. Results are deduplicated, priced items first, at
// @Description most 10. A failing vendor contributes no results.
// @Tags        search
// @Accept      json
// @Produce     json
// @Param       request body models.SearchRequest true "Query and/or barcode"
// @Success     200 {object} models.SearchResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Query or barcode is required"})
		return
	}

	products, err := h.aggregator.Search(c.Request.Context(), search.Request{
		Query:   req.Query,
		Barcode: req.Barcode,
	})
	if errors.Is(err, search.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Query or barcode is required"})
		return
	}
	if err != nil {
		log.Printf("Search error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to search products"})
		return
	}

	c.JSON(http.StatusOK, models.SearchResponse{Products: products})
}
