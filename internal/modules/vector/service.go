package vector

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/draftshift/core/internal/config"
	"github.com/draftshift/core/internal/modules/news"
	"github.com/draftshift/core/internal/pkg/httperr"
)

const defaultTopK = 5

// Match is one similarity-search hit.
type Match struct {
	ID      string                 `json:"id"`
	Score   float64                `json:"score"`
	Payload map[string]interface{} `json:"payload"`
}

type embedder interface {
	Embed(ctx context.Context, content string) ([]float64, error)
}

type pointStore interface {
	EnsureCollection(ctx context.Context, name string) error
	UpsertPoint(ctx context.Context, collection, pointID string, vec []float64, payload map[string]interface{}) error
	SearchPoints(ctx context.Context, collection string, vec []float64, userID string, topK int, scoreThreshold float64) ([]Match, error)
}

// Service embeds documents and stores them in Qdrant, scoped per user.
type Service struct {
	store             pointStore
	embedder          embedder
	defaultCollection string
	logger            *zap.Logger
}

// NewService fails when the vector store or the embedding credential is not
// configured; callers treat a nil service as "vector search disabled".
func NewService(cfg config.QdrantConfig, openAIKey string, logger *zap.Logger) (*Service, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("QDRANT_URL and QDRANT_KEY must be set to enable vector search")
	}
	if openAIKey == "" {
		return nil, fmt.Errorf("an OpenAI API key is required to create embeddings")
	}
	return &Service{
		store:             newQdrantClient(cfg.URL, cfg.APIKey, cfg.VectorSize),
		embedder:          newOpenAIEmbedder(openAIKey, cfg.EmbeddingModel),
		defaultCollection: cfg.Collection,
		logger:            logger,
	}, nil
}

// Search returns the user's most relevant documents for a query.
func (s *Service) Search(ctx context.Context, userID, query string, topK int, scoreThreshold float64) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, httperr.BadRequest("Query must not be empty")
	}
	if userID == "" {
		return nil, httperr.BadRequest("user_id is required to search documents")
	}
	if topK < 1 {
		topK = defaultTopK
	}

	collection := s.defaultCollection
	if err := s.store.EnsureCollection(ctx, collection); err != nil {
		return nil, err
	}
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.SearchPoints(ctx, collection, vec, userID, topK, scoreThreshold)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []Match{}
	}
	return matches, nil
}

// UpsertDocument embeds content and writes it to the collection. Returns the
// point ID and collection used.
func (s *Service) UpsertDocument(ctx context.Context, userID, content string, metadata map[string]interface{}, documentID, collection string) (string, string, error) {
	if userID == "" {
		return "", "", httperr.BadRequest("user_id is required to upsert a document")
	}
	if strings.TrimSpace(content) == "" {
		return "", "", httperr.BadRequest("Content must not be empty")
	}
	if collection == "" {
		collection = s.defaultCollection
	}
	if err := s.store.EnsureCollection(ctx, collection); err != nil {
		return "", "", err
	}

	vec, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return "", "", err
	}

	if documentID == "" {
		documentID = uuid.New().String()
	}
	payload := make(map[string]interface{}, len(metadata)+2)
	for k, v := range metadata {
		payload[k] = v
	}
	payload["content"] = content
	payload["user_id"] = userID

	if err := s.store.UpsertPoint(ctx, collection, documentID, vec, payload); err != nil {
		return "", "", err
	}
	return documentID, collection, nil
}

// IndexNews stores a fetched industry result as a searchable document. The
// point ID is derived from the slug so re-fetches overwrite instead of piling
// up duplicates.
func (s *Service) IndexNews(ctx context.Context, result news.IndustryNewsResult) error {
	var lines []string
	lines = append(lines, result.Summary)
	for _, article := range result.Articles {
		lines = append(lines, article.Title)
	}
	content := strings.TrimSpace(strings.Join(lines, "\n"))
	if content == "" {
		return nil
	}

	pointID := uuid.NewSHA1(uuid.NameSpaceURL, []byte("news/"+result.Slug)).String()
	_, _, err := s.UpsertDocument(ctx, "system", content, map[string]interface{}{
		"type":     "news",
		"slug":     result.Slug,
		"industry": result.Industry,
		"provider": result.Provider,
	}, pointID, "")
	return err
}
