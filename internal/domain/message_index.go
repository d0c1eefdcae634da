package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davidbz/llm-workflow/internal/observability"
)

const (
	vectorKeyPrefix = "msg:"
	maxSnippetRunes = 200
)

// SearchHit is a message whose embedding matched a search query.
type SearchHit struct {
	MessageID  string    `json:"message_id"`
	SessionID  string    `json:"session_id,omitempty"`
	Role       Role      `json:"role"`
	Snippet    string    `json:"snippet"`
	Similarity float64   `json:"similarity"`
	IndexedAt  time.Time `json:"indexed_at"`
}

// indexedMessage is the payload stored next to each vector.
type indexedMessage struct {
	MessageID string `json:"message_id"`
	SessionID string `json:"session_id,omitempty"`
	Role      Role   `json:"role"`
	Snippet   string `json:"snippet"`
}

// MessageIndexService embeds messages and answers similarity searches over them.
type MessageIndexService struct {
	embeddings EmbeddingGateway
	index      VectorIndex
	records    EmbeddingStore
	sessions   SessionStore
	namespace  string
	threshold  float64
}

// NewMessageIndexService creates a new message index service (DI constructor).
func NewMessageIndexService(
	embeddings EmbeddingGateway,
	index VectorIndex,
	records EmbeddingStore,
	sessions SessionStore,
	namespace string,
	threshold float64,
) *MessageIndexService {
	return &MessageIndexService{
		embeddings: embeddings,
		index:      index,
		records:    records,
		sessions:   sessions,
		namespace:  namespace,
		threshold:  threshold,
	}
}

// Index embeds a message, stores its vector and records the link.
func (s *MessageIndexService) Index(ctx context.Context, msg *SessionMessage) error {
	if msg == nil {
		return errors.New("message cannot be nil")
	}

	if strings.TrimSpace(msg.Content) == "" {
		return nil
	}

	vector, err := s.embedOne(ctx, msg.Content)
	if err != nil {
		return err
	}

	snippet := Snippet(msg.Content)
	payload, err := json.Marshal(indexedMessage{
		MessageID: msg.ID,
		SessionID: msg.SessionID,
		Role:      msg.Role,
		Snippet:   snippet,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal index payload: %w", err)
	}

	key := vectorKeyPrefix + msg.ID
	if err = s.index.Index(ctx, key, vector, payload); err != nil {
		return fmt.Errorf("failed to index message: %w", err)
	}

	if _, err = s.records.RecordEmbedding(ctx, NewEmbeddingRecord{
		SessionMessageID: msg.ID,
		VectorID:         key,
		TextSnippet:      snippet,
		Namespace:        s.namespace,
	}); err != nil {
		return fmt.Errorf("failed to record embedding: %w", err)
	}

	if err = s.sessions.MarkMessageIndexed(ctx, msg.ID); err != nil {
		return fmt.Errorf("failed to mark message indexed: %w", err)
	}

	observability.FromContext(ctx).Debug("message indexed",
		observability.String("message_id", msg.ID),
		observability.Int("dimension", len(vector)))

	return nil
}

// Search returns indexed messages similar to query, best match first.
func (s *MessageIndexService) Search(ctx context.Context, query string, limit int) ([]*SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, InvalidArgument("query is required")
	}
	if limit <= 0 {
		limit = 5
	}

	vector, err := s.embedOne(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := s.index.Search(ctx, vector, s.threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	hits := make([]*SearchHit, 0, len(results))
	for _, result := range results {
		var payload indexedMessage
		if unmarshalErr := json.Unmarshal(result.Data, &payload); unmarshalErr != nil {
			observability.FromContext(ctx).Warn("skipping unreadable index entry",
				observability.String("key", result.Key),
				observability.Error(unmarshalErr))
			continue
		}

		hits = append(hits, &SearchHit{
			MessageID:  payload.MessageID,
			SessionID:  payload.SessionID,
			Role:       payload.Role,
			Snippet:    payload.Snippet,
			Similarity: result.Similarity,
			IndexedAt:  result.IndexedAt,
		})
	}

	return hits, nil
}

func (s *MessageIndexService) embedOne(ctx context.Context, text string) ([]float64, error) {
	result, err := s.embeddings.Embed(ctx, &EmbeddingRequest{Texts: []string{text}})
	if err != nil {
		return nil, err
	}

	if len(result.Vectors) == 0 || len(result.Vectors[0]) == 0 {
		return nil, &EmbeddingError{Message: "embedding response contained no vector"}
	}

	return result.Vectors[0], nil
}

// Snippet truncates text to the stored snippet length.
func Snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSnippetRunes {
		return text
	}
	return string(runes[:maxSnippetRunes])
}
