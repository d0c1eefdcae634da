// Package memory provides an in-process vector index backed by chromem-go.
package memory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/davidbz/llm-workflow/internal/domain"
	"github.com/davidbz/llm-workflow/internal/observability"
)

const indexedAtKey = "indexed_at"

// errNoEmbedder is returned if chromem ever asks to embed content itself;
// vectors are always supplied by the embedding gateway.
var errNoEmbedder = errors.New("memory index does not embed content")

// Index implements domain.VectorIndex on a chromem collection.
type Index struct {
	collection *chromem.Collection
}

// NewIndex creates an empty in-memory index for namespace.
func NewIndex(namespace string) (*Index, error) {
	db := chromem.NewDB()

	noEmbed := func(context.Context, string) ([]float32, error) {
		return nil, errNoEmbedder
	}

	collection, err := db.GetOrCreateCollection(namespace, nil, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Index{collection: collection}, nil
}

// Index stores a vector with associated data, replacing any previous entry for key.
func (i *Index) Index(ctx context.Context, key string, vector []float64, data []byte) error {
	if len(vector) == 0 {
		return errors.New("vector cannot be empty")
	}

	err := i.collection.AddDocument(ctx, chromem.Document{
		ID:        key,
		Content:   string(data),
		Embedding: toFloat32(vector),
		Metadata: map[string]string{
			indexedAtKey: strconv.FormatInt(time.Now().Unix(), 10),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to index: %w", err)
	}

	observability.FromContext(ctx).Debug("vector indexed",
		observability.String("key", key),
		observability.Int("embedding_dim", len(vector)))

	return nil
}

// Search returns up to limit entries with cosine similarity at or above threshold.
func (i *Index) Search(
	ctx context.Context,
	vector []float64,
	threshold float64,
	limit int,
) ([]*domain.SearchResult, error) {
	count := i.collection.Count()
	if count == 0 || limit <= 0 {
		return []*domain.SearchResult{}, nil
	}

	// chromem requires nResults <= collection size.
	limit = min(limit, count)

	found, err := i.collection.QueryEmbedding(ctx, toFloat32(vector), limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]*domain.SearchResult, 0, len(found))
	for _, doc := range found {
		similarity := float64(doc.Similarity)
		if similarity < threshold {
			continue
		}

		var indexedAt time.Time
		if ts, parseErr := strconv.ParseInt(doc.Metadata[indexedAtKey], 10, 64); parseErr == nil {
			indexedAt = time.Unix(ts, 0)
		}

		results = append(results, &domain.SearchResult{
			Key:        doc.ID,
			Similarity: similarity,
			Data:       []byte(doc.Content),
			IndexedAt:  indexedAt,
		})
	}

	return results, nil
}

func toFloat32(vector []float64) []float32 {
	out := make([]float32, len(vector))
	for i, v := range vector {
		out[i] = float32(v)
	}
	return out
}
