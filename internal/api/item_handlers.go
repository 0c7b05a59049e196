package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/workshopTitleTool/internal/service"
)

type importRequest struct {
	Items []service.ImportItem `json:"items" binding:"required"`
}

func (s *Server) ListItemsHandler(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	items, err := s.Catalog.List(c.Request.Context(), limit)
	if err != nil {
		log.Printf("Error listing items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) GetItemHandler(c *gin.Context) {
	item, err := s.Catalog.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) ImportItemsHandler(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := s.Catalog.Import(c.Request.Context(), req.Items)
	if errors.Is(err, service.ErrInvalidItem) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("Error importing items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) DuplicatesHandler(c *gin.Context) {
	groups, err := s.Catalog.Duplicates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (s *Server) RecanonicalizeHandler(c *gin.Context) {
	changed, err := s.Catalog.Recanonicalize(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (s *Server) RefreshHandler(c *gin.Context) {
	n, err := s.Catalog.Refresh(c.Request.Context())
	if err != nil {
		log.Printf("Error refreshing items: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "refreshed": n})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": n})
}
