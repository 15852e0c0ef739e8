package handler

import (
	"net/http"

	searchService "bouncearound.com/daycare/internal/modules/search/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	service searchService.SearchService
}

func NewSearchHandler(service searchService.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

type searchQuery struct {
	Q     string `form:"q" binding:"required,min=1,max=200"`
	Type  string `form:"type"`
	Limit int64  `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (h *SearchHandler) Search(c *gin.Context) {
	var query searchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Search(query.Q, query.Type, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":                query.Q,
		"hits":                 res.Hits,
		"estimated_total_hits": res.EstimatedTotalHits,
	})
}
