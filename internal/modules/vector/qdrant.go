package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// qdrantClient is a thin REST client for the Qdrant points API. Only the
// operations this module needs are implemented.
type qdrantClient struct {
	baseURL    string
	apiKey     string
	vectorSize int
	httpClient *http.Client
}

type qdrantHTTPError struct {
	StatusCode int
	Body       string
}

func (e *qdrantHTTPError) Error() string {
	return fmt.Sprintf("qdrant error %d: %s", e.StatusCode, e.Body)
}

func newQdrantClient(baseURL, apiKey string, vectorSize int) *qdrantClient {
	return &qdrantClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		vectorSize: vectorSize,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// EnsureCollection creates the collection with cosine distance when it does
// not exist yet.
func (q *qdrantClient) EnsureCollection(ctx context.Context, name string) error {
	_, err := q.do(ctx, http.MethodGet, "/collections/"+url.PathEscape(name), nil)
	if err == nil {
		return nil
	}
	var qe *qdrantHTTPError
	if !errors.As(err, &qe) || qe.StatusCode != http.StatusNotFound {
		return err
	}

	body, _ := json.Marshal(map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     q.vectorSize,
			"distance": "Cosine",
		},
	})
	_, err = q.do(ctx, http.MethodPut, "/collections/"+url.PathEscape(name), body)
	if errors.As(err, &qe) && qe.StatusCode == http.StatusConflict {
		return nil
	}
	return err
}

// UpsertPoint writes one embedded document into the collection.
func (q *qdrantClient) UpsertPoint(ctx context.Context, collection, pointID string, vec []float64, payload map[string]interface{}) error {
	body, _ := json.Marshal(map[string]interface{}{
		"points": []map[string]interface{}{
			{
				"id":      pointID,
				"vector":  vec,
				"payload": payload,
			},
		},
	})
	_, err := q.do(ctx, http.MethodPut,
		"/collections/"+url.PathEscape(collection)+"/points?wait=true", body)
	return err
}

// SearchPoints runs a similarity search restricted to the given user's
// documents.
func (q *qdrantClient) SearchPoints(ctx context.Context, collection string, vec []float64, userID string, topK int, scoreThreshold float64) ([]Match, error) {
	request := map[string]interface{}{
		"vector":       vec,
		"limit":        topK,
		"with_payload": true,
		"filter": map[string]interface{}{
			"must": []map[string]interface{}{
				{
					"key":   "user_id",
					"match": map[string]interface{}{"value": userID},
				},
			},
		},
	}
	if scoreThreshold > 0 {
		request["score_threshold"] = scoreThreshold
	}
	body, _ := json.Marshal(request)

	data, err := q.do(ctx, http.MethodPost,
		"/collections/"+url.PathEscape(collection)+"/points/search", body)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Result []struct {
			ID      json.RawMessage        `json:"id"`
			Score   float64                `json:"score"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(resp.Result))
	for _, hit := range resp.Result {
		// Point IDs can be numeric or UUID strings on the wire.
		var id string
		if err := json.Unmarshal(hit.ID, &id); err != nil {
			id = string(hit.ID)
		}
		matches = append(matches, Match{
			ID:      id,
			Score:   hit.Score,
			Payload: hit.Payload,
		})
	}
	return matches, nil
}

func (q *qdrantClient) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, q.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := q.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &qdrantHTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
