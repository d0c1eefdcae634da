// Package redis provides a vector index on Redis Stack (RediSearch KNN over
// hash documents).
package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/llm-workflow/internal/domain"
	"github.com/davidbz/llm-workflow/internal/observability"
)

const (
	redisDialectVersion = 2
	bytesPerFloat32     = 4
)

// Config describes the RediSearch index.
type Config struct {
	IndexName string
	KeyPrefix string
	Dimension int
}

// Index implements domain.VectorIndex using Redis.
type Index struct {
	client *redis.Client
	config Config
}

// NewIndex creates the search index if it does not exist yet.
func NewIndex(ctx context.Context, client *redis.Client, config Config) (*Index, error) {
	idx := &Index{
		client: client,
		config: config,
	}

	if err := idx.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return idx, nil
}

// Index stores a vector with associated data in a hash under key.
func (i *Index) Index(ctx context.Context, key string, vector []float64, data []byte) error {
	logger := observability.FromContext(ctx)

	if len(vector) != i.config.Dimension {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(vector), i.config.Dimension)
	}

	err := i.client.HSet(ctx, key,
		"embedding", floatsToBytes(vector),
		"data", string(data),
		"indexed_at", time.Now().Unix(),
	).Err()
	if err != nil {
		logger.Error("vector index failed", observability.Error(err))
		return fmt.Errorf("failed to index: %w", err)
	}

	logger.Debug("vector indexed",
		observability.String("key", key),
		observability.Int("data_size", len(data)))

	return nil
}

// Search finds up to limit vectors with cosine similarity at or above threshold.
func (i *Index) Search(
	ctx context.Context,
	vector []float64,
	threshold float64,
	limit int,
) ([]*domain.SearchResult, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("starting vector search",
		observability.String("index", i.config.IndexName),
		observability.Float64("threshold", threshold),
		observability.Int("limit", limit))

	query := fmt.Sprintf("*=>[KNN %d @embedding $vec AS score]", limit)

	results, err := i.client.FTSearchWithArgs(ctx, i.config.IndexName, query,
		&redis.FTSearchOptions{
			Return: []redis.FTSearchReturn{
				{FieldName: "data"},
				{FieldName: "indexed_at"},
				{FieldName: "score"},
			},
			SortBy:         []redis.FTSearchSortBy{{FieldName: "score", Asc: true}},
			Limit:          limit,
			DialectVersion: redisDialectVersion,
			Params: map[string]any{
				"vec": floatsToBytes(vector),
			},
		},
	).Result()
	if err != nil {
		logger.Error("vector search failed", observability.Error(err))
		return nil, fmt.Errorf("search failed: %w", err)
	}

	found := make([]*domain.SearchResult, 0, len(results.Docs))
	for _, doc := range results.Docs {
		if result := parseDocument(doc, threshold); result != nil {
			found = append(found, result)
		}
	}

	logger.Debug("vector search completed",
		observability.Int("docs_returned", len(results.Docs)),
		observability.Int("above_threshold", len(found)))

	return found, nil
}

func (i *Index) ensureIndex(ctx context.Context) error {
	logger := observability.FromContext(ctx)

	if _, err := i.client.FTInfo(ctx, i.config.IndexName).Result(); err == nil {
		logger.Info("redis search index already exists, skipping creation",
			observability.String("index_name", i.config.IndexName))
		return nil
	}

	logger.Info("creating redis search index",
		observability.String("index_name", i.config.IndexName),
		observability.String("prefix", i.config.KeyPrefix),
		observability.Int("embedding_dimension", i.config.Dimension))

	_, err := i.client.FTCreate(ctx, i.config.IndexName,
		&redis.FTCreateOptions{
			OnHash: true,
			Prefix: []any{i.config.KeyPrefix},
		},
		&redis.FieldSchema{
			FieldName: "embedding",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				FlatOptions: &redis.FTFlatOptions{
					Type:           "FLOAT32",
					Dim:            i.config.Dimension,
					DistanceMetric: "COSINE",
				},
			},
		},
		&redis.FieldSchema{
			FieldName: "data",
			FieldType: redis.SearchFieldTypeText,
			NoIndex:   true,
		},
		&redis.FieldSchema{
			FieldName: "indexed_at",
			FieldType: redis.SearchFieldTypeNumeric,
			Sortable:  true,
		},
	).Result()
	if err != nil {
		return err
	}

	return nil
}

// floatsToBytes packs a vector as little-endian FLOAT32, the layout RediSearch expects.
func floatsToBytes(fs []float64) []byte {
	buf := make([]byte, len(fs)*bytesPerFloat32)
	for i, f := range fs {
		binary.LittleEndian.PutUint32(buf[i*bytesPerFloat32:], math.Float32bits(float32(f)))
	}
	return buf
}

// parseDocument converts a KNN hit; nil when the score is unreadable, the
// similarity is under threshold, or the payload is missing.
func parseDocument(doc redis.Document, threshold float64) *domain.SearchResult {
	scoreStr, ok := doc.Fields["score"]
	if !ok {
		return nil
	}

	distance, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return nil
	}

	// Cosine distance to similarity
	similarity := 1.0 - distance
	if similarity < threshold {
		return nil
	}

	data, ok := doc.Fields["data"]
	if !ok {
		return nil
	}

	var indexedAt time.Time
	if ts, parseErr := strconv.ParseInt(doc.Fields["indexed_at"], 10, 64); parseErr == nil {
		indexedAt = time.Unix(ts, 0)
	}

	return &domain.SearchResult{
		Key:        doc.ID,
		Similarity: similarity,
		Data:       []byte(data),
		IndexedAt:  indexedAt,
	}
}
