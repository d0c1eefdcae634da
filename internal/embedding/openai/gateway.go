// Package openai implements the embedding gateway over an OpenAI-compatible
// embeddings endpoint.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"

	"github.com/davidbz/llm-workflow/internal/domain"
	"github.com/davidbz/llm-workflow/internal/observability"
	chatopenai "github.com/davidbz/llm-workflow/internal/provider/openai"
)

const (
	embeddingsPath = "embeddings"

	unexpectedEmbeddingPrefix = "unexpected embedding error: "

	// Embedding dimensions for different OpenAI models.
	embeddingDimensionStandard = 1536 // Ada v2 and Small v3
	embeddingDimensionLarge    = 3072 // Large v3
)

// Gateway implements domain.EmbeddingGateway.
type Gateway struct {
	client openai.Client
	model  string
	hasKey bool
}

// NewGateway creates a new embedding gateway. A missing API key fails each
// call with an EmbeddingError instead of failing construction.
func NewGateway(config Config) *Gateway {
	if config.DefaultModel == "" {
		config.DefaultModel = string(openai.EmbeddingModelTextEmbedding3Small)
	}

	return &Gateway{
		client: chatopenai.NewSDKClient(chatopenai.Config{
			APIKey:     config.APIKey,
			BaseURL:    config.BaseURL,
			Timeout:    config.Timeout,
			MaxRetries: config.MaxRetries,
		}),
		model:  config.DefaultModel,
		hasKey: config.APIKey != "",
	}
}

// Embed returns one vector per input text, in input order.
func (g *Gateway) Embed(ctx context.Context, req *domain.EmbeddingRequest) (result *domain.EmbeddingResult, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = &domain.EmbeddingError{Message: fmt.Sprintf("%s%v", unexpectedEmbeddingPrefix, recovered)}
		}
	}()

	if req == nil || len(req.Texts) == 0 {
		return &domain.EmbeddingResult{Vectors: [][]float64{}, Usage: domain.Usage{}}, nil
	}

	if !g.hasKey {
		return nil, &domain.EmbeddingError{Message: "no API key configured for embeddings"}
	}

	model := req.Model
	if model == "" {
		model = g.model
	}

	ctx = observability.WithModel(ctx, model)
	logger := observability.FromContext(ctx)

	var raw map[string]any
	start := time.Now()
	callErr := g.client.Post(ctx, embeddingsPath, map[string]any{
		"model": model,
		"input": req.Texts,
	}, &raw)
	latency := time.Since(start)

	if callErr != nil {
		logger.Error("embedding call failed", observability.Error(callErr))
		return nil, toEmbeddingError(callErr)
	}

	vectors := domain.ExtractVectors(raw)
	if len(vectors) != len(req.Texts) {
		logger.Warn("embedding count does not match input count",
			observability.Int("inputs", len(req.Texts)),
			observability.Int("vectors", len(vectors)))
	}

	logger.Debug("embedding call succeeded",
		observability.Int("vectors", len(vectors)),
		observability.Duration("latency", latency))

	return &domain.EmbeddingResult{
		Vectors: vectors,
		Usage:   domain.ExtractUsage(raw),
	}, nil
}

// Dimension returns the vector dimension of the default model.
func (g *Gateway) Dimension() int {
	switch g.model {
	case string(openai.EmbeddingModelTextEmbeddingAda002),
		string(openai.EmbeddingModelTextEmbedding3Small):
		return embeddingDimensionStandard
	case string(openai.EmbeddingModelTextEmbedding3Large):
		return embeddingDimensionLarge
	default:
		return embeddingDimensionStandard
	}
}

func toEmbeddingError(err error) *domain.EmbeddingError {
	if chatopenai.IsExpectedError(err) {
		return &domain.EmbeddingError{Message: err.Error()}
	}
	return &domain.EmbeddingError{Message: unexpectedEmbeddingPrefix + err.Error()}
}
