package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// QdrantIndex is a minimal REST client to Qdrant. It assumes cosine
// distance and creates collections on first use.
type QdrantIndex struct {
	url       string
	apiKey    string
	dimension int
	client    *http.Client

	mu      sync.Mutex
	ensured map[string]bool
}

// QdrantConfig configures the Qdrant REST client.
type QdrantConfig struct {
	URL       string
	APIKey    string
	Dimension int
	Timeout   time.Duration
}

// NewQdrantIndex creates a Qdrant-backed vector index.
func NewQdrantIndex(cfg QdrantConfig) (*QdrantIndex, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant URL is required")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension %d", cfg.Dimension)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &QdrantIndex{
		url:       cfg.URL,
		apiKey:    cfg.APIKey,
		dimension: cfg.Dimension,
		client:    &http.Client{Timeout: timeout},
		ensured:   make(map[string]bool),
	}, nil
}

// Upsert writes points into a collection, creating it if missing.
func (q *QdrantIndex) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	if err := q.ensureCollection(ctx, collection); err != nil {
		return err
	}

	body := map[string]any{"points": make([]map[string]any, 0, len(points))}
	list := body["points"].([]map[string]any)
	for _, p := range points {
		payload := map[string]any{"text": p.Text}
		for k, v := range p.Metadata {
			payload["meta_"+k] = v
		}
		list = append(list, map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": payload,
		})
	}
	body["points"] = list

	status, err := q.doJSON(ctx, http.MethodPut,
		fmt.Sprintf("%s/collections/%s/points?wait=true", q.url, collection), body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("qdrant upsert failed with status %d", status)
	}
	return nil
}

// Query performs a nearest-neighbor search. A missing collection returns an
// empty result rather than an error.
func (q *QdrantIndex) Query(ctx context.Context, collection string, vector []float32, k int, filter map[string]string) ([]Hit, error) {
	if k <= 0 {
		k = 3
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	if len(filter) > 0 {
		must := make([]map[string]any, 0, len(filter))
		for key, value := range filter {
			must = append(must, map[string]any{
				"key":   "meta_" + key,
				"match": map[string]any{"value": value},
			})
		}
		req["filter"] = map[string]any{"must": must}
	}

	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	status, err := q.doJSON(ctx, http.MethodPost,
		fmt.Sprintf("%s/collections/%s/points/search", q.url, collection), req, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return []Hit{}, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("qdrant search failed with status %d", status)
	}

	hits := make([]Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hit := Hit{
			Metadata: make(map[string]string),
			// Qdrant reports cosine similarity; convert to distance
			Distance: 1 - r.Score,
		}
		for key, value := range r.Payload {
			str, ok := value.(string)
			if !ok {
				continue
			}
			if key == "text" {
				hit.Text = str
			} else if len(key) > 5 && key[:5] == "meta_" {
				hit.Metadata[key[5:]] = str
			}
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func (q *QdrantIndex) ensureCollection(ctx context.Context, collection string) error {
	q.mu.Lock()
	done := q.ensured[collection]
	q.mu.Unlock()
	if done {
		return nil
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     q.dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 409 if the collection already exists
	status, err := q.doJSON(ctx, http.MethodPut,
		fmt.Sprintf("%s/collections/%s", q.url, collection), body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusConflict {
		return fmt.Errorf("failed to create collection %s: status %d", collection, status)
	}

	q.mu.Lock()
	q.ensured[collection] = true
	q.mu.Unlock()
	return nil
}

func (q *QdrantIndex) doJSON(ctx context.Context, method, url string, body, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("qdrant request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if out != nil && resp.StatusCode == http.StatusOK {
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
