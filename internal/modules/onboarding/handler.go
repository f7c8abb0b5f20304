package onboarding

import (
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
	g := rg.Group("/onboarding", auth)
	g.GET("/data", h.get)
	g.POST("/data", h.submit)
}

func (h *Handler) get(c *gin.Context) {
	record, err := h.svc.GetByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Err(c, err)
		return
	}
	if record == nil {
		response.OK(c, gin.H{"message": "No onboarding data found", "data": nil})
		return
	}
	response.OK(c, gin.H{"message": "Onboarding data retrieved successfully", "data": record})
}

func (h *Handler) submit(c *gin.Context) {
	var input Input
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	record, err := h.svc.Upsert(c.Request.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Onboarding data submitted successfully", "data": record})
}
