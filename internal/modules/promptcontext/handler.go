package promptcontext

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
	rg.GET("/memory/prompt-context", auth, h.build)
}

func (h *Handler) build(c *gin.Context) {
	memoryLimit, err := strconv.Atoi(c.DefaultQuery("memory_limit", strconv.Itoa(DefaultMemoryLimit)))
	if err != nil {
		response.BadRequest(c, "memory_limit must be an integer")
		return
	}
	newsLimit, err := strconv.Atoi(c.DefaultQuery("news_limit", strconv.Itoa(DefaultNewsLimit)))
	if err != nil {
		response.BadRequest(c, "news_limit must be an integer")
		return
	}
	topK, err := strconv.Atoi(c.DefaultQuery("search_top_k", strconv.Itoa(DefaultSearchTopK)))
	if err != nil {
		response.BadRequest(c, "search_top_k must be an integer")
		return
	}

	bundle, err := h.svc.Build(c.Request.Context(), Params{
		UserID:       middleware.CurrentUserID(c),
		Query:        c.Query("query"),
		MemoryLimit:  memoryLimit,
		NewsLimit:    newsLimit,
		SearchTopK:   topK,
		IndustrySlug: c.Query("industry_slug"),
	})
	if err != nil {
		response.Err(c, err)
		return
	}
	response.OK(c, gin.H{
		"message":        "Prompt context built successfully",
		"prompt_context": bundle.PromptContext,
		"onboarding":     bundle.Onboarding,
		"memories":       bundle.Memories,
		"news":           bundle.News,
		"vector_matches": bundle.VectorMatches,
		"degraded":       bundle.Degraded,
	})
}
