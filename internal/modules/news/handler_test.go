package news

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestListIndustriesEndpoint(t *testing.T) {
	svc := newTestService([]IndustryConfig{testConfig("technology", "http://unused", "")}, nil)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/news/industries", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, w.Code, http.StatusOK)

	var body struct {
		Data []IndustryInfo `json:"data"`
	}
	assert.Equal(t, json.Unmarshal(w.Body.Bytes(), &body), nil)
	assert.Equal(t, len(body.Data), 1)
	assert.Equal(t, body.Data[0].Slug, "technology")
}

func TestFetchOneUnknownSlugReturns404(t *testing.T) {
	svc := newTestService([]IndustryConfig{testConfig("technology", "http://unused", "")}, nil)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/news/bogus", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, w.Code, http.StatusNotFound)
}

func TestFetchManyUnknownSlugSkipsAllUpstreamCalls(t *testing.T) {
	var hits atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"articles":[{"title":"T","url":"https://example.com/t"}]}`))
	}))
	defer upstream.Close()

	svc := newTestService([]IndustryConfig{testConfig("technology", upstream.URL, "")}, nil)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/news?industries=technology,__bogus__", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, w.Code, http.StatusNotFound)
	assert.Equal(t, hits.Load(), int64(0))
}

func TestFetchManyAllFailedReturns503(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := newTestService([]IndustryConfig{testConfig("technology", upstream.URL, "")}, nil)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/news", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, w.Code, http.StatusServiceUnavailable)

	var body struct {
		Errors []FetchError `json:"errors"`
	}
	assert.Equal(t, json.Unmarshal(w.Body.Bytes(), &body), nil)
	assert.Equal(t, len(body.Errors), 1)
	assert.Equal(t, body.Errors[0].Slug, "technology")
	assert.Equal(t, body.Errors[0].StatusCode, http.StatusBadGateway)
}

func TestFetchManyPartialFailureReturns200(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "finance" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"articles":[{"title":"OK","url":"https://example.com/ok"}]}`))
	}))
	defer upstream.Close()

	svc := newTestService([]IndustryConfig{
		testConfig("technology", upstream.URL, ""),
		testConfig("finance", upstream.URL, ""),
	}, nil)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/news?industries=technology,finance", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, w.Code, http.StatusOK)

	var body BulkResult
	assert.Equal(t, json.Unmarshal(w.Body.Bytes(), &body), nil)
	assert.Equal(t, len(body.Results), 1)
	assert.Equal(t, body.Results[0].Slug, "technology")
	assert.Equal(t, len(body.Errors), 1)
	assert.Equal(t, body.Errors[0].Slug, "finance")
}

func TestFetchManyInvalidIndustriesParam(t *testing.T) {
	svc := newTestService([]IndustryConfig{testConfig("technology", "http://unused", "")}, nil)
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/news?industries=%20,%20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestFetchOneRefreshParam(t *testing.T) {
	hits := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(`{"articles":[{"title":"Fresh","url":"https://example.com/f"}]}`))
	}))
	defer upstream.Close()

	svc := NewService([]IndustryConfig{testConfig("technology", upstream.URL, "")},
		stubSummarizer{}, 300*time.Second, zap.NewNop())
	svc.getenv = func(string) string { return "" }
	router := newTestRouter(svc)

	for _, path := range []string{
		"/api/v1/news/technology",
		"/api/v1/news/technology",
		"/api/v1/news/technology?refresh_cache=true",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, w.Code, http.StatusOK)
	}

	assert.Equal(t, hits, 2)
}
