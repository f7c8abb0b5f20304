package vector

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"

	"github.com/draftshift/core/internal/config"
	"github.com/draftshift/core/internal/modules/news"
	"github.com/draftshift/core/internal/pkg/httperr"
)

type fakeEmbedder struct {
	vec []float64
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return f.vec, f.err
}

type fakePoints struct {
	collections map[string]bool
	points      map[string]map[string]interface{}
	matches     []Match
	lastUserID  string
	lastTopK    int
}

func newFakePoints() *fakePoints {
	return &fakePoints{
		collections: make(map[string]bool),
		points:      make(map[string]map[string]interface{}),
	}
}

func (f *fakePoints) EnsureCollection(_ context.Context, name string) error {
	f.collections[name] = true
	return nil
}

func (f *fakePoints) UpsertPoint(_ context.Context, _, pointID string, _ []float64, payload map[string]interface{}) error {
	f.points[pointID] = payload
	return nil
}

func (f *fakePoints) SearchPoints(_ context.Context, _ string, _ []float64, userID string, topK int, _ float64) ([]Match, error) {
	f.lastUserID = userID
	f.lastTopK = topK
	return f.matches, nil
}

func newFakeService(points *fakePoints, emb *fakeEmbedder) *Service {
	return &Service{
		store:             points,
		embedder:          emb,
		defaultCollection: "documents",
		logger:            zap.NewNop(),
	}
}

func TestNewServiceRequiresConfiguration(t *testing.T) {
	_, err := NewService(config.QdrantConfig{}, "sk-test", zap.NewNop())
	if err == nil {
		t.Fatal("expected error for missing qdrant configuration")
	}

	_, err = NewService(config.QdrantConfig{URL: "http://q", APIKey: "k", Collection: "documents"}, "", zap.NewNop())
	if err == nil {
		t.Fatal("expected error for missing embedding key")
	}
}

func TestSearchValidation(t *testing.T) {
	svc := newFakeService(newFakePoints(), &fakeEmbedder{vec: []float64{0.1}})

	_, err := svc.Search(context.Background(), "user-1", "   ", 5, 0)
	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)

	_, err = svc.Search(context.Background(), "", "query", 5, 0)
	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
}

func TestSearchScopesToUserAndDefaultsTopK(t *testing.T) {
	points := newFakePoints()
	points.matches = []Match{{ID: "p1", Score: 0.9}}
	svc := newFakeService(points, &fakeEmbedder{vec: []float64{0.1, 0.2}})

	matches, err := svc.Search(context.Background(), "user-1", "tone of voice", 0, 0)

	assert.Equal(t, err, nil)
	assert.Equal(t, len(matches), 1)
	assert.Equal(t, points.lastUserID, "user-1")
	assert.Equal(t, points.lastTopK, defaultTopK)
}

func TestSearchReturnsEmptySliceNotNil(t *testing.T) {
	svc := newFakeService(newFakePoints(), &fakeEmbedder{vec: []float64{0.1}})

	matches, err := svc.Search(context.Background(), "user-1", "query", 5, 0)

	assert.Equal(t, err, nil)
	if matches == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestUpsertDocumentAttachesUserAndContent(t *testing.T) {
	points := newFakePoints()
	svc := newFakeService(points, &fakeEmbedder{vec: []float64{0.1}})

	id, collection, err := svc.UpsertDocument(context.Background(), "user-1", "Brand voice notes",
		map[string]interface{}{"kind": "notes"}, "", "")

	assert.Equal(t, err, nil)
	assert.Equal(t, collection, "documents")
	payload := points.points[id]
	assert.Equal(t, payload["content"], "Brand voice notes")
	assert.Equal(t, payload["user_id"], "user-1")
	assert.Equal(t, payload["kind"], "notes")
}

func TestUpsertDocumentValidation(t *testing.T) {
	svc := newFakeService(newFakePoints(), &fakeEmbedder{vec: []float64{0.1}})

	_, _, err := svc.UpsertDocument(context.Background(), "", "content", nil, "", "")
	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)

	_, _, err = svc.UpsertDocument(context.Background(), "user-1", "  ", nil, "", "")
	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
}

func TestIndexNewsDerivesStablePointID(t *testing.T) {
	points := newFakePoints()
	svc := newFakeService(points, &fakeEmbedder{vec: []float64{0.1}})

	result := news.IndustryNewsResult{
		Slug:     "technology",
		Industry: "Technology",
		Provider: "GNews",
		Summary:  "Technology snapshot: chips rally",
		Articles: []news.Article{{Title: "Chips rally", URL: "https://example.com"}},
	}

	assert.Equal(t, svc.IndexNews(context.Background(), result), nil)
	assert.Equal(t, len(points.points), 1)

	// A second index of the same slug overwrites the same point.
	assert.Equal(t, svc.IndexNews(context.Background(), result), nil)
	assert.Equal(t, len(points.points), 1)
}

func TestIndexNewsSkipsEmptyContent(t *testing.T) {
	points := newFakePoints()
	svc := newFakeService(points, &fakeEmbedder{vec: []float64{0.1}})

	err := svc.IndexNews(context.Background(), news.IndustryNewsResult{Slug: "energy"})

	assert.Equal(t, err, nil)
	assert.Equal(t, len(points.points), 0)
}
