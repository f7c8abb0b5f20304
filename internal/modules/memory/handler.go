package memory

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
	g := rg.Group("/memory", auth)
	g.GET("", h.list)
	g.POST("", h.add)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		response.BadRequest(c, "limit must be an integer")
		return
	}

	rows, err := h.svc.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Memories retrieved", "data": rows})
}

func (h *Handler) add(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var payload struct {
		Memories []ItemInput `json:"memories"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	inserted, err := h.svc.AddBatch(c.Request.Context(), userID, payload.Memories)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, gin.H{
		"message":  "Memories saved",
		"inserted": len(inserted),
		"data":     inserted,
	})
}
