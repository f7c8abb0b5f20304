package news

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/draftshift/core/internal/pkg/httperr"
	"github.com/draftshift/core/internal/pkg/taskqueue"
)

// Summarizer produces a non-empty summary for a set of articles. It must not
// fail; degraded summaries are its responsibility.
type Summarizer interface {
	BuildSummary(ctx context.Context, industry, provider string, articles []Article) string
}

// Indexer receives successful fetch results for background vector indexing.
type Indexer interface {
	IndexNews(ctx context.Context, result IndustryNewsResult) error
}

const taskTypeIndexNews = "news:vector_index"

type cacheEntry struct {
	at      time.Time
	payload IndustryNewsResult
}

type upstreamStatusError struct {
	status int
}

func (e *upstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.status)
}

// Service fetches, caches, and summarizes industry news. The cache is
// in-process: one entry per slug, refreshed wholesale on successful fetches
// and never cleared by failures.
type Service struct {
	configs   map[string]IndustryConfig
	order     []string
	summaries Summarizer
	logger    *zap.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
	ttl   time.Duration

	httpClient *http.Client
	getenv     func(string) string
	now        func() time.Time

	tasks   *taskqueue.Service
	indexer Indexer
}

func NewService(configs []IndustryConfig, summaries Summarizer, ttl time.Duration, logger *zap.Logger) *Service {
	s := &Service{
		configs:    make(map[string]IndustryConfig, len(configs)),
		summaries:  summaries,
		logger:     logger,
		cache:      make(map[string]cacheEntry),
		ttl:        ttl,
		httpClient: &http.Client{},
		getenv:     os.Getenv,
		now:        time.Now,
	}
	for _, cfg := range configs {
		if _, dup := s.configs[cfg.Slug]; dup {
			continue
		}
		s.configs[cfg.Slug] = cfg
		s.order = append(s.order, cfg.Slug)
	}
	return s
}

// EnableVectorIndexing turns on background indexing of fetched results.
func (s *Service) EnableVectorIndexing(tasks *taskqueue.Service, indexer Indexer) {
	s.tasks = tasks
	s.indexer = indexer
}

// ListIndustries reports every registry entry in registration order,
// including entries whose API key is absent.
func (s *Service) ListIndustries() []IndustryInfo {
	infos := make([]IndustryInfo, 0, len(s.order))
	for _, slug := range s.order {
		cfg := s.configs[slug]
		configured := true
		if cfg.APIKeyEnv != "" {
			configured = s.getenv(cfg.APIKeyEnv) != ""
		}
		infos = append(infos, IndustryInfo{
			Slug:           cfg.Slug,
			Industry:       cfg.Industry,
			Provider:       cfg.Provider,
			RequiresAPIKey: cfg.RequiresAPIKey,
			APIKeyEnv:      cfg.APIKeyEnv,
			IsConfigured:   configured,
		})
	}
	return infos
}

func (s *Service) getConfig(slug string) (IndustryConfig, error) {
	cfg, ok := s.configs[slug]
	if !ok {
		return IndustryConfig{}, httperr.NotFound(
			"Unknown industry slug '%s'. Available options: %s",
			slug, strings.Join(s.order, ", "))
	}
	return cfg, nil
}

// ResolveSlugs expands an optional comma-separated slug list into validated,
// order-preserving, deduplicated slugs. An empty request means every industry.
// Validation happens before any network activity.
func (s *Service) ResolveSlugs(requested string) ([]string, error) {
	if strings.TrimSpace(requested) == "" {
		return append([]string(nil), s.order...), nil
	}
	var slugs []string
	for _, part := range strings.Split(requested, ",") {
		if slug := strings.TrimSpace(part); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	if len(slugs) == 0 {
		return nil, httperr.BadRequest("No valid industries were provided.")
	}
	for _, slug := range slugs {
		if _, err := s.getConfig(slug); err != nil {
			return nil, err
		}
	}
	seen := make(map[string]struct{}, len(slugs))
	ordered := slugs[:0]
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		ordered = append(ordered, slug)
	}
	return ordered, nil
}

// GetIndustryNews returns a cached result when fresh, otherwise fetches from
// the upstream provider. A failed fetch leaves any previous cache entry in
// place; refresh bypasses the cache read but still writes on success.
func (s *Service) GetIndustryNews(ctx context.Context, slug string, refresh bool) (IndustryNewsResult, error) {
	cfg, err := s.getConfig(slug)
	if err != nil {
		return IndustryNewsResult{}, err
	}

	if !refresh {
		s.mu.RLock()
		entry, ok := s.cache[slug]
		s.mu.RUnlock()
		if ok && s.now().Sub(entry.at) <= s.ttl {
			return entry.payload, nil
		}
	}

	var apiKey string
	if cfg.RequiresAPIKey {
		apiKey = s.getenv(cfg.APIKeyEnv)
		if apiKey == "" {
			return IndustryNewsResult{}, httperr.ServiceUnavailable(
				"%s API key missing. Set %s to enable %s coverage.",
				cfg.Provider, cfg.APIKeyEnv, cfg.Industry)
		}
	}

	// Detach from the request context so a client disconnect does not abort
	// a fetch that will populate the cache for the next caller.
	fetchCtx := context.WithoutCancel(ctx)

	body, err := s.executeRequest(fetchCtx, cfg, apiKey)
	if err != nil {
		return IndustryNewsResult{}, classifyFetchError(cfg.Provider, err)
	}

	parsed := cfg.Parse(body)
	articles := make([]Article, 0, len(parsed))
	for _, article := range parsed {
		if article.Title == "" || article.URL == "" {
			continue
		}
		articles = append(articles, article)
	}

	result := IndustryNewsResult{
		Industry: cfg.Industry,
		Slug:     cfg.Slug,
		Provider: cfg.Provider,
		Articles: articles,
		Summary:  s.summaries.BuildSummary(fetchCtx, cfg.Industry, cfg.Provider, articles),
	}

	s.mu.Lock()
	s.cache[slug] = cacheEntry{at: s.now(), payload: result}
	s.mu.Unlock()

	s.maybeIndex(result)
	return result, nil
}

// FetchMany fetches the given slugs concurrently and reassembles results and
// errors in slug order. Callers are expected to have resolved slugs first;
// an unknown slug here surfaces as a per-slug error, not a panic.
func (s *Service) FetchMany(ctx context.Context, slugs []string, refresh bool) ([]IndustryNewsResult, []FetchError) {
	type outcome struct {
		result IndustryNewsResult
		err    error
	}
	outcomes := make([]outcome, len(slugs))

	var wg sync.WaitGroup
	for i, slug := range slugs {
		wg.Add(1)
		go func(i int, slug string) {
			defer wg.Done()
			result, err := s.GetIndustryNews(ctx, slug, refresh)
			outcomes[i] = outcome{result: result, err: err}
		}(i, slug)
	}
	wg.Wait()

	results := make([]IndustryNewsResult, 0, len(slugs))
	var errs []FetchError
	for i, slug := range slugs {
		if outcomes[i].err != nil {
			errs = append(errs, FetchError{
				Slug:       slug,
				StatusCode: httperr.StatusOf(outcomes[i].err),
				Detail:     httperr.DetailOf(outcomes[i].err),
			})
			continue
		}
		results = append(results, outcomes[i].result)
	}
	return results, errs
}

func (s *Service) executeRequest(ctx context.Context, cfg IndustryConfig, apiKey string) ([]byte, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		cfg.Endpoint+"?"+cfg.Params(apiKey).Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &upstreamStatusError{status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

func classifyFetchError(provider string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return httperr.GatewayTimeout("%s timed out: %v", provider, err)
	}
	return httperr.BadGateway("%s request failed: %v", provider, err)
}

func (s *Service) maybeIndex(result IndustryNewsResult) {
	if s.tasks == nil || s.indexer == nil {
		return
	}
	ctx := context.Background()
	task, created, err := s.tasks.Enqueue(ctx, taskTypeIndexNews, result, result.Slug)
	if err != nil {
		s.logger.Warn("failed to enqueue news indexing task",
			zap.String("slug", result.Slug), zap.Error(err))
		return
	}
	if !created {
		return
	}
	go func() {
		_ = s.tasks.UpdateStatus(ctx, task.ID, taskqueue.TaskRunning, nil, "")
		if err := s.indexer.IndexNews(ctx, result); err != nil {
			s.logger.Warn("news vector indexing failed",
				zap.String("slug", result.Slug), zap.Error(err))
			_ = s.tasks.UpdateStatus(ctx, task.ID, taskqueue.TaskFailed, nil, err.Error())
			return
		}
		_ = s.tasks.UpdateStatus(ctx, task.ID, taskqueue.TaskCompleted, nil, "")
	}()
}
