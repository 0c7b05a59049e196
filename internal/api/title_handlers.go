package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/workshopTitleTool/internal/parser"
)

// 单次批量请求的上限
const maxBatchTitles = 1000

type canonicalizeRequest struct {
	Title *string `json:"title" binding:"required"`
}

type batchRequest struct {
	Titles []string `json:"titles" binding:"required"`
}

type spanView struct {
	Kind    string `json:"kind"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Content string `json:"content"`
	Action  string `json:"action"`
}

type titleView struct {
	Title     string     `json:"title"`
	BaseTitle string     `json:"base_title"`
	Spans     []spanView `json:"spans"`
}

func newTitleView(res parser.Result) titleView {
	spans := make([]spanView, 0, len(res.Spans))
	for _, s := range res.Spans {
		spans = append(spans, spanView{
			Kind:    s.Kind.String(),
			Start:   s.Start,
			End:     s.End,
			Content: s.Content,
			Action:  s.Action.String(),
		})
	}
	return titleView{Title: res.Title, BaseTitle: res.BaseTitle, Spans: spans}
}

// CanonicalizeHandler 返回单个标题的 base title 和 span 明细
func (s *Server) CanonicalizeHandler(c *gin.Context) {
	var req canonicalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newTitleView(s.Canon.Explain(*req.Title)))
}

func (s *Server) BatchCanonicalizeHandler(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Titles) > maxBatchTitles {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "too many titles"})
		return
	}

	results := make([]gin.H, 0, len(req.Titles))
	for _, t := range req.Titles {
		results = append(results, gin.H{"title": t, "base_title": s.Canon.BaseTitle(t)})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
