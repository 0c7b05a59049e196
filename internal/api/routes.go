package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/workshopTitleTool/internal/event"
	"github.com/pokerjest/workshopTitleTool/internal/parser"
	"github.com/pokerjest/workshopTitleTool/internal/service"
)

// Server 持有 handler 需要的依赖
type Server struct {
	Canon   *parser.Canonicalizer
	Catalog *service.CatalogService
	Bus     event.Bus
}

func InitRoutes(r *gin.Engine, s *Server) {
	if s.Canon == nil {
		s.Canon = parser.NewCanonicalizer(nil)
	}
	if s.Bus == nil {
		s.Bus = event.GlobalBus
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API
	apiGroup := r.Group("/api")
	{
		// Titles
		apiGroup.POST("/titles/canonicalize", s.CanonicalizeHandler)
		apiGroup.POST("/titles/batch", s.BatchCanonicalizeHandler)

		// Catalog
		apiGroup.GET("/items", s.ListItemsHandler)
		apiGroup.POST("/items", s.ImportItemsHandler)
		apiGroup.GET("/items/duplicates", s.DuplicatesHandler)
		apiGroup.POST("/items/recanonicalize", s.RecanonicalizeHandler)
		apiGroup.POST("/items/refresh", s.RefreshHandler)
		apiGroup.GET("/items/:id", s.GetItemHandler)

		// Events
		apiGroup.GET("/events", s.SSEHandler)
	}
}
