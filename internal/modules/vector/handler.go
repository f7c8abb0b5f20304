package vector

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
	g := rg.Group("/vector", auth)
	g.POST("/search", h.search)
	g.POST("/documents", h.upsert)
}

func (h *Handler) search(c *gin.Context) {
	var payload struct {
		Query          string  `json:"query"`
		TopK           int     `json:"top_k"`
		ScoreThreshold float64 `json:"score_threshold"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	matches, err := h.svc.Search(c.Request.Context(), middleware.CurrentUserID(c),
		payload.Query, payload.TopK, payload.ScoreThreshold)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.OK(c, gin.H{"matches": matches})
}

func (h *Handler) upsert(c *gin.Context) {
	var payload struct {
		Content    string                 `json:"content"`
		Metadata   map[string]interface{} `json:"metadata"`
		DocumentID string                 `json:"document_id"`
		Collection string                 `json:"collection"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	id, collection, err := h.svc.UpsertDocument(c.Request.Context(), middleware.CurrentUserID(c),
		payload.Content, payload.Metadata, payload.DocumentID, payload.Collection)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, gin.H{"id": id, "collection": collection})
}
