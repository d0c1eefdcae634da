package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/llm-workflow/internal/domain"
	"github.com/davidbz/llm-workflow/internal/embedding/openai"
	"github.com/davidbz/llm-workflow/internal/observability"
)

func newEmbeddingsServer(t *testing.T, reply string, hits *atomic.Int32, bodies chan<- map[string]any) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if bodies != nil {
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			bodies <- body
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestGateway_Embed(t *testing.T) {
	t.Run("should return vectors in input order", func(t *testing.T) {
		var hits atomic.Int32
		bodies := make(chan map[string]any, 1)
		server := newEmbeddingsServer(t,
			`{"data":[{"embedding":[0.1,0.2]},{"embedding":[0.3,0.4]}],"usage":{"prompt_tokens":4}}`,
			&hits, bodies)

		gateway := openai.NewGateway(openai.Config{APIKey: "k", BaseURL: server.URL, DefaultModel: "text-embedding-3-small"})

		result, err := gateway.Embed(context.Background(), &domain.EmbeddingRequest{Texts: []string{"a", "b"}})
		require.NoError(t, err)
		require.Equal(t, [][]float64{{0.1, 0.2}, {0.3, 0.4}}, result.Vectors)
		require.Equal(t, 4, result.Usage.PromptTokens())

		body := <-bodies
		require.Equal(t, "text-embedding-3-small", body["model"])
		require.Equal(t, []any{"a", "b"}, body["input"])
	})

	t.Run("should skip network for empty input", func(t *testing.T) {
		var hits atomic.Int32
		server := newEmbeddingsServer(t, `{"data":[]}`, &hits, nil)

		// No key either: empty input is answered before the credential check.
		gateway := openai.NewGateway(openai.Config{BaseURL: server.URL})

		result, err := gateway.Embed(context.Background(), &domain.EmbeddingRequest{Texts: []string{}})
		require.NoError(t, err)
		require.Empty(t, result.Vectors)
		require.Equal(t, int32(0), hits.Load())
	})

	t.Run("should fail without credential before network", func(t *testing.T) {
		var hits atomic.Int32
		server := newEmbeddingsServer(t, `{"data":[]}`, &hits, nil)

		gateway := openai.NewGateway(openai.Config{BaseURL: server.URL})

		result, err := gateway.Embed(context.Background(), &domain.EmbeddingRequest{Texts: []string{"a"}})
		require.Nil(t, result)

		var embedErr *domain.EmbeddingError
		require.ErrorAs(t, err, &embedErr)
		require.Equal(t, int32(0), hits.Load())
	})

	t.Run("should keep positions for items without vectors", func(t *testing.T) {
		var hits atomic.Int32
		server := newEmbeddingsServer(t,
			`{"data":[{"vector":[1]},{"index":1},"junk",{"values":[2]}]}`,
			&hits, nil)

		gateway := openai.NewGateway(openai.Config{APIKey: "k", BaseURL: server.URL})

		result, err := gateway.Embed(context.Background(), &domain.EmbeddingRequest{Texts: []string{"a", "b", "c"}})
		require.NoError(t, err)
		require.Equal(t, [][]float64{{1}, {}, {2}}, result.Vectors)
	})

	t.Run("should warn but not fail on count mismatch", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		observability.SetLogger(zap.New(core))
		t.Cleanup(func() { observability.SetLogger(zap.NewNop()) })

		var hits atomic.Int32
		server := newEmbeddingsServer(t, `{"data":[{"embedding":[1]},{"embedding":[2]}]}`, &hits, nil)

		gateway := openai.NewGateway(openai.Config{APIKey: "k", BaseURL: server.URL})

		result, err := gateway.Embed(context.Background(), &domain.EmbeddingRequest{Texts: []string{"a", "b", "c"}})
		require.NoError(t, err)
		require.Len(t, result.Vectors, 2)
		require.Equal(t, 1, logs.FilterMessage("embedding count does not match input count").Len())
	})

	t.Run("should wrap timeouts", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		gateway := openai.NewGateway(openai.Config{APIKey: "k", BaseURL: server.URL, Timeout: 50 * time.Millisecond})

		result, err := gateway.Embed(context.Background(), &domain.EmbeddingRequest{Texts: []string{"a"}})
		require.Nil(t, result)

		var embedErr *domain.EmbeddingError
		require.ErrorAs(t, err, &embedErr)
		require.Contains(t, embedErr.Message, "deadline exceeded")
	})

	t.Run("should mark undecodable replies unexpected", func(t *testing.T) {
		var hits atomic.Int32
		server := newEmbeddingsServer(t, `"nope"`, &hits, nil)

		gateway := openai.NewGateway(openai.Config{APIKey: "k", BaseURL: server.URL})

		_, err := gateway.Embed(context.Background(), &domain.EmbeddingRequest{Texts: []string{"a"}})

		var embedErr *domain.EmbeddingError
		require.ErrorAs(t, err, &embedErr)
		require.Contains(t, embedErr.Message, "unexpected embedding error: ")
	})
}

func TestGateway_Dimension(t *testing.T) {
	require.Equal(t, 3072, openai.NewGateway(openai.Config{DefaultModel: "text-embedding-3-large"}).Dimension())
	require.Equal(t, 1536, openai.NewGateway(openai.Config{}).Dimension())
}
