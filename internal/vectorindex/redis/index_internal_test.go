package redis

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFloatsToBytes(t *testing.T) {
	buf := floatsToBytes([]float64{1.5, -2})

	require.Len(t, buf, 8)
	require.InDelta(t, 1.5, math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])), 1e-6)
	require.InDelta(t, -2.0, math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])), 1e-6)
}

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name       string
		doc        redis.Document
		threshold  float64
		expectNil  bool
		similarity float64
	}{
		{
			name: "converts distance to similarity",
			doc: redis.Document{
				ID:     "msg:1",
				Fields: map[string]string{"score": "0.1", "data": "payload", "indexed_at": "1700000000"},
			},
			threshold:  0.8,
			similarity: 0.9,
		},
		{
			name:      "drops results under threshold",
			doc:       redis.Document{ID: "msg:2", Fields: map[string]string{"score": "0.5", "data": "x"}},
			threshold: 0.8,
			expectNil: true,
		},
		{
			name:      "drops results without score",
			doc:       redis.Document{ID: "msg:3", Fields: map[string]string{"data": "x"}},
			expectNil: true,
		},
		{
			name:      "drops results without data",
			doc:       redis.Document{ID: "msg:4", Fields: map[string]string{"score": "0"}},
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseDocument(tt.doc, tt.threshold)
			if tt.expectNil {
				require.Nil(t, result)
				return
			}

			require.NotNil(t, result)
			require.Equal(t, tt.doc.ID, result.Key)
			require.InDelta(t, tt.similarity, result.Similarity, 1e-9)
			require.Equal(t, "payload", string(result.Data))
			require.Equal(t, int64(1700000000), result.IndexedAt.Unix())
		})
	}
}
