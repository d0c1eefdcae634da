package sqlite

import (
	"context"
	"fmt"

	"github.com/davidbz/llm-workflow/internal/domain"
)

// LogUsageEvent inserts a usage event.
func (s *Store) LogUsageEvent(ctx context.Context, in domain.NewUsageEvent) (*domain.UsageEvent, error) {
	event := &domain.UsageEvent{
		ID:               newID(),
		UserID:           in.UserID,
		ProjectID:        in.ProjectID,
		SessionMessageID: in.SessionMessageID,
		Model:            in.Model,
		TokensPrompt:     in.TokensPrompt,
		TokensResponse:   in.TokensResponse,
		CostUSD:          in.CostUSD,
		LatencyMS:        in.LatencyMS,
		CreatedAt:        s.now(),
	}

	var latency any
	if in.LatencyMS != nil {
		latency = *in.LatencyMS
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_events
		 (id, user_id, project_id, session_message_id, model, tokens_prompt, tokens_response, cost_usd, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, nullable(event.UserID), nullable(event.ProjectID), nullable(event.SessionMessageID), event.Model,
		event.TokensPrompt, event.TokensResponse, event.CostUSD, latency, formatTime(event.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert usage event: %w", err)
	}

	return event, nil
}

// RecordEmbedding links a message to its vector.
func (s *Store) RecordEmbedding(ctx context.Context, in domain.NewEmbeddingRecord) (*domain.EmbeddingRecord, error) {
	record := &domain.EmbeddingRecord{
		ID:               newID(),
		SessionMessageID: in.SessionMessageID,
		VectorID:         in.VectorID,
		TextSnippet:      in.TextSnippet,
		Namespace:        in.Namespace,
		CreatedAt:        s.now(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO embeddings (id, session_message_id, vector_id, text_snippet, namespace, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.SessionMessageID, nullable(record.VectorID), nullable(record.TextSnippet),
		nullable(record.Namespace), formatTime(record.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert embedding record: %w", err)
	}

	return record, nil
}
