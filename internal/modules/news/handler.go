package news

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/draftshift/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/news")
	g.GET("/industries", h.listIndustries)
	g.GET("", h.fetchMany)
	g.GET("/:slug", h.fetchOne)
}

func (h *Handler) listIndustries(c *gin.Context) {
	response.OK(c, h.svc.ListIndustries())
}

func (h *Handler) fetchMany(c *gin.Context) {
	slugs, err := h.svc.ResolveSlugs(c.Query("industries"))
	if err != nil {
		response.Err(c, err)
		return
	}
	refresh := parseRefresh(c)

	results, fetchErrs := h.svc.FetchMany(c.Request.Context(), slugs, refresh)
	if len(results) == 0 && len(fetchErrs) > 0 {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"ok":     0,
			"code":   http.StatusServiceUnavailable,
			"errors": fetchErrs,
		})
		return
	}
	if fetchErrs == nil {
		fetchErrs = []FetchError{}
	}
	c.JSON(http.StatusOK, BulkResult{Results: results, Errors: fetchErrs})
}

func (h *Handler) fetchOne(c *gin.Context) {
	result, err := h.svc.GetIndustryNews(c.Request.Context(), c.Param("slug"), parseRefresh(c))
	if err != nil {
		response.Err(c, err)
		return
	}
	response.OK(c, result)
}

func parseRefresh(c *gin.Context) bool {
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh_cache", "false"))
	return refresh
}
