package promptcontext

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/draftshift/core/internal/models"
	"github.com/draftshift/core/internal/modules/memory"
	"github.com/draftshift/core/internal/modules/onboarding"
	"github.com/draftshift/core/internal/modules/vector"
	"github.com/draftshift/core/internal/pkg/httperr"
)

const (
	DefaultMemoryLimit = 5
	DefaultNewsLimit   = 3
	DefaultSearchTopK  = 5

	maxMemoryLimit = 20
	maxNewsLimit   = 10

	vectorSnippetLength = 500
)

// Degradation records an optional section that fell back to placeholder
// content, and why. Callers can assert on reasons instead of parsing the
// final text.
type Degradation struct {
	Section string `json:"section"`
	Reason  string `json:"reason"`
}

// Bundle is the assembled prompt context plus the raw records each section
// was built from.
type Bundle struct {
	PromptContext string                         `json:"prompt_context"`
	Onboarding    *models.OnboardingContextModel `json:"onboarding"`
	Memories      []models.UserMemoryModel       `json:"memories"`
	News          []models.NewsHookModel         `json:"news"`
	VectorMatches []vector.Match                 `json:"vector_matches"`
	Degraded      []Degradation                  `json:"degraded"`
}

// Params controls one assembly run. Zero limits fall back to defaults via
// NormalizeParams; callers outside this package should go through Build.
type Params struct {
	UserID       string
	Query        string
	MemoryLimit  int
	NewsLimit    int
	SearchTopK   int
	IndustrySlug string
}

type onboardingReader interface {
	GetByUser(ctx context.Context, userID string) (*models.OnboardingContextModel, error)
}

type memoryReader interface {
	Recent(ctx context.Context, userID string, limit int) ([]models.UserMemoryModel, error)
}

type hookReader interface {
	Recent(ctx context.Context, limit int, industrySlug string) ([]models.NewsHookModel, error)
}

type searcher interface {
	Search(ctx context.Context, userID, query string, topK int, scoreThreshold float64) ([]vector.Match, error)
}

// Service stitches onboarding data, stored memories, recent news hooks, and
// vector search hits into one prompt-ready text block.
type Service struct {
	onboarding onboardingReader
	memories   memoryReader
	hooks      hookReader
	search     searcher
	logger     *zap.Logger
}

// NewService accepts a nil search service; vector search then degrades with
// an explicit reason whenever a query asks for it.
func NewService(ob onboardingReader, mem memoryReader, hooks hookReader, search searcher, logger *zap.Logger) *Service {
	return &Service{
		onboarding: ob,
		memories:   mem,
		hooks:      hooks,
		search:     search,
		logger:     logger,
	}
}

// Build assembles the context bundle. Row-store failures on the onboarding
// and memory reads are fatal; the news and vector sections degrade to
// placeholders with a recorded reason instead of failing the request.
func (s *Service) Build(ctx context.Context, params Params) (*Bundle, error) {
	if params.UserID == "" {
		return nil, httperr.BadRequest("user id is required")
	}
	if params.MemoryLimit < 1 || params.MemoryLimit > maxMemoryLimit {
		return nil, httperr.BadRequest("memory_limit must be between 1 and %d", maxMemoryLimit)
	}
	if params.NewsLimit < 0 || params.NewsLimit > maxNewsLimit {
		return nil, httperr.BadRequest("news_limit must be between 0 and %d", maxNewsLimit)
	}
	if params.SearchTopK < 1 {
		params.SearchTopK = DefaultSearchTopK
	}

	bundle := &Bundle{
		Memories:      []models.UserMemoryModel{},
		News:          []models.NewsHookModel{},
		VectorMatches: []vector.Match{},
		Degraded:      []Degradation{},
	}

	record, err := s.onboarding.GetByUser(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	bundle.Onboarding = record

	memories, err := s.memories.Recent(ctx, params.UserID, params.MemoryLimit)
	if err != nil {
		return nil, err
	}
	bundle.Memories = memories

	if params.NewsLimit > 0 {
		items, err := s.hooks.Recent(ctx, params.NewsLimit, params.IndustrySlug)
		if err != nil {
			s.logger.Warn("failed to load news hooks for prompt context",
				zap.String("user_id", params.UserID), zap.Error(err))
			bundle.Degraded = append(bundle.Degraded, Degradation{
				Section: "news",
				Reason:  err.Error(),
			})
		} else {
			bundle.News = items
		}
	}

	if query := strings.TrimSpace(params.Query); query != "" {
		if s.search == nil {
			bundle.Degraded = append(bundle.Degraded, Degradation{
				Section: "vector_search",
				Reason:  "vector search is not configured",
			})
		} else {
			matches, err := s.search.Search(ctx, params.UserID, query, params.SearchTopK, 0)
			if err != nil {
				s.logger.Warn("vector search skipped for prompt context",
					zap.String("user_id", params.UserID), zap.Error(err))
				bundle.Degraded = append(bundle.Degraded, Degradation{
					Section: "vector_search",
					Reason:  err.Error(),
				})
			} else {
				bundle.VectorMatches = matches
			}
		}
	}

	var sections []string
	sections = append(sections, onboarding.RenderPromptSection(bundle.Onboarding))
	sections = append(sections, memory.RenderPromptSection(bundle.Memories))
	if params.NewsLimit > 0 {
		sections = append(sections, renderNewsSection(bundle.News))
	}
	if len(bundle.VectorMatches) > 0 {
		sections = append(sections, renderVectorSection(bundle.VectorMatches))
	}

	bundle.PromptContext = strings.TrimSpace(strings.Join(sections, "\n\n"))
	if bundle.PromptContext == "" {
		bundle.PromptContext = "No personalization context available."
	}
	return bundle, nil
}

func renderNewsSection(items []models.NewsHookModel) string {
	if len(items) == 0 {
		return "No recent news context available."
	}
	var lines []string
	for _, item := range items {
		industry := item.Industry
		if industry == "" {
			industry = item.IndustrySlug
		}
		if industry == "" {
			industry = "News"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", industry, item.Summary))
	}
	return "Recent news context:\n" + strings.Join(lines, "\n")
}

func renderVectorSection(matches []vector.Match) string {
	var lines []string
	for _, hit := range matches {
		content, _ := hit.Payload["content"].(string)
		snippet := content
		if runes := []rune(snippet); len(runes) > vectorSnippetLength {
			snippet = string(runes[:vectorSnippetLength]) + "..."
		}
		lines = append(lines, fmt.Sprintf("- score %.4f: %s", hit.Score, snippet))
	}
	return "Vector search matches:\n" + strings.Join(lines, "\n")
}
