package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"closet-backend/internal/middleware"
)

// Router holds everything the HTTP surface is wired from. Images may be a
// handler over a nil service; Metrics may be nil.
type Router struct {
	Health    *HealthHandler
	Analyze   *AnalyzeHandler
	Search    *SearchHandler
	Closet    *ClosetHandler
	Images    *ImagesHandler
	Metrics   http.Handler
	JWTSecret string
}

// Register mounts the public proxy under /api and the signed-in closet under
// /api/v1/closet.
func (r Router) Register(engine *gin.Engine) {
	api := engine.Group("/api", middleware.CORS("POST, OPTIONS", "Content-Type"))
	api.GET("/health", r.Health.Health)
	api.POST("/analyze", r.Analyze.Analyze)
	api.POST("/search", r.Search.Search)
	for _, path := range []string{"/health", "/analyze", "/search"} {
		api.OPTIONS(path, preflight)
	}

	v1 := engine.Group("/api/v1/closet",
		middleware.CORS("GET, POST, OPTIONS", "Content-Type, Authorization"),
		middleware.AuthMiddleware(r.JWTSecret),
	)
	v1.GET("/items", r.Closet.ListItems)
	v1.POST("/items", r.Closet.AddItem)
	v1.POST("/outfits", r.Closet.GenerateOutfit)
	v1.GET("/outfits/latest", r.Closet.LatestOutfit)
	v1.POST("/images", r.Images.Upload)
	v1.OPTIONS("/*path", preflight)

	if r.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(r.Metrics))
	}
}

// CORS answers OPTIONS before this runs.
func preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}
