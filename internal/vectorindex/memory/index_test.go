package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/llm-workflow/internal/vectorindex/memory"
)

func TestIndex_SearchAboveThreshold(t *testing.T) {
	ctx := context.Background()
	index, err := memory.NewIndex("messages")
	require.NoError(t, err)

	require.NoError(t, index.Index(ctx, "msg:a", []float64{1, 0, 0}, []byte(`{"id":"a"}`)))
	require.NoError(t, index.Index(ctx, "msg:b", []float64{0.9, 0.1, 0}, []byte(`{"id":"b"}`)))
	require.NoError(t, index.Index(ctx, "msg:c", []float64{0, 0, 1}, []byte(`{"id":"c"}`)))

	results, err := index.Search(ctx, []float64{1, 0, 0}, 0.8, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "msg:a", results[0].Key)
	require.InDelta(t, 1.0, results[0].Similarity, 1e-4)
	require.JSONEq(t, `{"id":"a"}`, string(results[0].Data))
	require.False(t, results[0].IndexedAt.IsZero())
	require.Equal(t, "msg:b", results[1].Key)
}

func TestIndex_EmptyIndex(t *testing.T) {
	index, err := memory.NewIndex("messages")
	require.NoError(t, err)

	results, err := index.Search(context.Background(), []float64{1, 0}, 0.5, 5)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestIndex_ReplacesKey(t *testing.T) {
	ctx := context.Background()
	index, err := memory.NewIndex("messages")
	require.NoError(t, err)

	require.NoError(t, index.Index(ctx, "msg:a", []float64{1, 0}, []byte("old")))
	require.NoError(t, index.Index(ctx, "msg:a", []float64{1, 0}, []byte("new")))

	results, err := index.Search(ctx, []float64{1, 0}, 0, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "new", string(results[0].Data))
}

func TestIndex_RejectsEmptyVector(t *testing.T) {
	index, err := memory.NewIndex("messages")
	require.NoError(t, err)

	require.Error(t, index.Index(context.Background(), "msg:a", nil, []byte("x")))
}
