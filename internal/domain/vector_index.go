package domain

import (
	"context"
	"time"
)

// VectorIndex stores vectors and answers similarity queries.
type VectorIndex interface {
	// Index stores a vector with associated data under key.
	Index(ctx context.Context, key string, vector []float64, data []byte) error

	// Search finds vectors whose similarity to vector is at least threshold.
	Search(ctx context.Context, vector []float64, threshold float64, limit int) ([]*SearchResult, error)
}

// SearchResult represents a vector search result.
type SearchResult struct {
	Key        string
	Similarity float64
	Data       []byte
	IndexedAt  time.Time
}
