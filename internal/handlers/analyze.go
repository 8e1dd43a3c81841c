package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"closet-backend/internal/classifier"
	"closet-backend/internal/models"
)

type AnalyzeHandler struct {
	analyzer *classifier.Analyzer
}

func NewAnalyzeHandler(analyzer *classifier.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// Analyze godoc
// @Summary     Classify a clothing photo
// @Description Sends a base64 photo to the vision model and returns category, color,
// @Description season, a short description and a brand guess. An unreadable model
// @Description answer yields the fallback record, not an error.
// @Tags        analyze
// @Accept      json
// @Produce     json
// @Param       request body models.AnalyzeRequest true "Base64 image"
// @Success     200 {object} models.AnalysisResult
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Image) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Image is required"})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req.Image)
	if err != nil {
		log.Printf("Analyze error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to analyze image"})
		return
	}

	c.JSON(http.StatusOK, result)
}
