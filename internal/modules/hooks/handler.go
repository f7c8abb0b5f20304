package hooks

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/draftshift/core/internal/middleware"
	"github.com/draftshift/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/hooks", auth)
	g.GET("/get-user-hooks", h.list)
	g.POST("/bookmark-hook", h.bookmark)
}

func (h *Handler) list(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil {
		response.BadRequest(c, "limit must be an integer")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.BadRequest(c, "offset must be an integer")
		return
	}

	page, err := h.svc.ListByUser(c.Request.Context(), middleware.CurrentUserID(c), limit, offset)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.OK(c, gin.H{
		"success": true,
		"data":    page.Hooks,
		"pagination": gin.H{
			"limit":    page.Limit,
			"offset":   page.Offset,
			"total":    page.Total,
			"has_more": page.HasMore,
		},
	})
}

func (h *Handler) bookmark(c *gin.Context) {
	var payload struct {
		Hook string `json:"hook"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	row, err := h.svc.Bookmark(c.Request.Context(), middleware.CurrentUserID(c), payload.Hook)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, gin.H{
		"success": true,
		"message": "Hook bookmarked successfully",
		"data":    row,
	})
}
