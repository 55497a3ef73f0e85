package retrieval

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryIndex is a simple in-memory vector index using brute-force cosine
// distance. It backs tests and local development without a Qdrant instance.
type MemoryIndex struct {
	mu          sync.RWMutex
	collections map[string][]Point
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{collections: make(map[string][]Point)}
}

// Upsert appends points to a collection, replacing points with matching IDs.
func (m *MemoryIndex) Upsert(_ context.Context, collection string, points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.collections[collection]
	for _, p := range points {
		replaced := false
		for i := range existing {
			if existing[i].ID == p.ID {
				existing[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, p)
		}
	}
	m.collections[collection] = existing
	return nil
}

// Query returns up to k hits ranked by ascending cosine distance.
// An unknown collection yields an empty result.
func (m *MemoryIndex) Query(_ context.Context, collection string, vector []float32, k int, filter map[string]string) ([]Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if k <= 0 {
		k = 3
	}

	hits := make([]Hit, 0, k)
	for _, p := range m.collections[collection] {
		if !matchesFilter(p.Metadata, filter) {
			continue
		}
		hits = append(hits, Hit{
			Text:     p.Text,
			Metadata: p.Metadata,
			Distance: cosineDistance(vector, p.Vector),
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func matchesFilter(metadata, filter map[string]string) bool {
	for key, want := range filter {
		if metadata[key] != want {
			return false
		}
	}
	return true
}

func cosineDistance(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
