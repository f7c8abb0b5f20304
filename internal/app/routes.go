package app

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/draftshift/core/internal/middleware"
	"github.com/draftshift/core/internal/modules/hooks"
	"github.com/draftshift/core/internal/modules/memory"
	"github.com/draftshift/core/internal/modules/news"
	"github.com/draftshift/core/internal/modules/onboarding"
	"github.com/draftshift/core/internal/modules/promptcontext"
	"github.com/draftshift/core/internal/modules/vector"
	"github.com/draftshift/core/internal/pkg/llm"
	"github.com/draftshift/core/internal/pkg/response"
	"github.com/draftshift/core/internal/pkg/taskqueue"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.Idempotence(a.rc.Raw()))

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Shared services
	llmClient := llm.NewFromConfig(a.cfg.AI)
	taskSvc := taskqueue.NewService(a.rc)

	newsSvc := news.NewService(
		news.DefaultConfigs(),
		news.NewSummaryBuilder(llmClient),
		time.Duration(a.cfg.News.CacheTTLSeconds)*time.Second,
		a.logger,
	)

	// Qdrant is optional: without it the vector routes are absent and
	// prompt-context assembly degrades with an explicit reason.
	var vectorSvc *vector.Service
	if svc, err := vector.NewService(a.cfg.Qdrant, os.Getenv("OPENAI_API_KEY"), a.logger); err != nil {
		a.logger.Info("vector search disabled", zap.String("reason", err.Error()))
	} else {
		vectorSvc = svc
		if a.cfg.News.VectorIndexing {
			newsSvc.EnableVectorIndexing(taskSvc, vectorSvc)
		}
	}

	memorySvc := memory.NewService(a.db, a.logger)
	onboardingSvc := onboarding.NewService(a.db, a.logger)
	hooksSvc := hooks.NewService(a.db, a.logger)

	// News routes are public but rate limited per IP.
	newsGroup := api.Group("")
	newsGroup.Use(middleware.RateLimit(a.rc.Raw(), middleware.RateLimitConfig{}))
	news.NewHandler(newsSvc).RegisterRoutes(newsGroup)

	memory.NewHandler(memorySvc).RegisterRoutes(api, authMW)
	onboarding.NewHandler(onboardingSvc).RegisterRoutes(api, authMW)
	hooks.NewHandler(hooksSvc).RegisterRoutes(api, authMW)

	contextSvc := newPromptContextService(onboardingSvc, memorySvc, hooksSvc, vectorSvc, a.logger)
	promptcontext.NewHandler(contextSvc).RegisterRoutes(api, authMW)

	if vectorSvc != nil {
		vector.NewHandler(vectorSvc).RegisterRoutes(api, authMW)
	}
}

// newPromptContextService avoids handing a typed nil to the assembler's
// searcher interface when vector search is disabled.
func newPromptContextService(ob *onboarding.Service, mem *memory.Service, hk *hooks.Service, vec *vector.Service, logger *zap.Logger) *promptcontext.Service {
	if vec == nil {
		return promptcontext.NewService(ob, mem, hk, nil, logger)
	}
	return promptcontext.NewService(ob, mem, hk, vec, logger)
}
