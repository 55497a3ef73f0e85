package retrieval

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Collection names, one per artifact domain.
const (
	CollectionCoverLetters      = "cover_letters"
	CollectionConnections       = "linkedin_connections"
	CollectionJobInquiries      = "job_inquiries"
	CollectionResumeSuggestions = "resume_suggestions"
)

// Example is a retrieved prior artifact used to build a prompt.
type Example struct {
	Text     string
	Metadata map[string]string
	Distance float64
}

// Retriever wraps the embedder and vector index into a single named
// collection and exposes add/retrieve by raw text. There is no
// deduplication and no invalidation: once added, an example may resurface
// in any future retrieval for the collection.
type Retriever struct {
	collection string
	embedder   Embedder
	index      Index
}

// NewRetriever creates a retriever scoped to one collection.
func NewRetriever(collection string, embedder Embedder, index Index) *Retriever {
	return &Retriever{
		collection: collection,
		embedder:   embedder,
		index:      index,
	}
}

// Add embeds text and upserts it into the collection. When id is empty a
// new UUID is generated. Returns the id of the stored entry.
func (r *Retriever) Add(ctx context.Context, text string, metadata map[string]string, id string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	vectors, err := r.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return "", fmt.Errorf("failed to embed document: %w", err)
	}
	if len(vectors) != 1 {
		return "", fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}

	point := Point{
		ID:       id,
		Vector:   vectors[0],
		Text:     text,
		Metadata: metadata,
	}
	if err := r.index.Upsert(ctx, r.collection, []Point{point}); err != nil {
		return "", fmt.Errorf("failed to upsert document: %w", err)
	}
	return id, nil
}

// Retrieve returns up to k examples nearest to the query, closest first.
// An empty collection yields an empty list, never an error. filter is an
// optional metadata equality constraint.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int, filter map[string]string) ([]Example, error) {
	vectors, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}

	hits, err := r.index.Query(ctx, r.collection, vectors[0], k, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	examples := make([]Example, len(hits))
	for i, hit := range hits {
		examples[i] = Example{
			Text:     hit.Text,
			Metadata: hit.Metadata,
			Distance: hit.Distance,
		}
	}
	return examples, nil
}
