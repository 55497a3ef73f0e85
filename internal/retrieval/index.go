package retrieval

import "context"

// Point is a single entry persisted in a vector index collection.
type Point struct {
	ID       string
	Vector   []float32
	Text     string
	Metadata map[string]string
}

// Hit is a single nearest-neighbor result. Distance is cosine distance,
// so 0 means identical direction and results are ranked ascending.
type Hit struct {
	Text     string
	Metadata map[string]string
	Distance float64
}

// Index persists (vector, text, metadata) triples in named collections and
// answers k-nearest-neighbor queries by cosine distance.
type Index interface {
	Upsert(ctx context.Context, collection string, points []Point) error
	// Query returns up to k hits ranked nearest first. A missing or empty
	// collection yields an empty result, not an error. filter restricts
	// results to points whose metadata matches all given key/value pairs.
	Query(ctx context.Context, collection string, vector []float32, k int, filter map[string]string) ([]Hit, error)
}
