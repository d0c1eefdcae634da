package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidbz/llm-workflow/internal/observability"
)

// userContentSeparator joins structured user content for storage.
const userContentSeparator = " "

// RunRequest is one LLM run. Turns is preferred; when it is empty a single
// user turn is built from Content.
type RunRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Turns     []Turn `json:"messages,omitempty"`
	Content   string `json:"content,omitempty"`
	Model     string `json:"model,omitempty"`
}

// RunResult is returned to the caller of a run.
type RunResult struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

// RunService orchestrates a chat call with its persistence and accounting.
type RunService struct {
	chat           ChatGateway
	sessions       SessionStore
	usage          UsageStore
	costCalculator CostCalculator
	events         EventPublisher
	indexer        MessageIndexer
	defaultModel   string
}

// NewRunService creates a new run service (DI constructor). indexer may be nil.
func NewRunService(
	chat ChatGateway,
	sessions SessionStore,
	usage UsageStore,
	costCalculator CostCalculator,
	events EventPublisher,
	indexer MessageIndexer,
	defaultModel string,
) *RunService {
	return &RunService{
		chat:           chat,
		sessions:       sessions,
		usage:          usage,
		costCalculator: costCalculator,
		events:         events,
		indexer:        indexer,
		defaultModel:   defaultModel,
	}
}

// Run validates the session, records user turns, calls the chat gateway,
// records the assistant reply and logs a usage event.
func (r *RunService) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	model := req.Model
	if model == "" {
		model = r.defaultModel
	}

	turns := req.Turns
	if len(turns) == 0 {
		turns = []Turn{{Role: RoleUser, Content: NewTextContent(req.Content)}}
	}

	ctx = observability.WithModel(ctx, model)

	var session *Session
	if req.SessionID != "" {
		ctx = observability.WithSessionID(ctx, req.SessionID)

		found, err := r.sessions.GetSession(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		session = found
	}

	logger := observability.FromContext(ctx)
	logger.Info("llm run started", observability.Int("turns", len(turns)))

	r.recordUserTurns(ctx, req.SessionID, model, turns)

	result, err := r.chat.Complete(ctx, &CompletionRequest{
		Turns: turns,
		Model: model,
	})
	if err != nil {
		return nil, err
	}

	usage := result.Usage
	if usage == nil {
		usage = Usage{}
	}

	// Unknown pricing yields zero cost.
	cost, _ := r.costCalculator.Calculate(ctx, model, usage)

	assistant, err := r.sessions.CreateMessage(ctx, NewMessage{
		SessionID:      req.SessionID,
		Role:           RoleAssistant,
		Content:        result.Text,
		Model:          model,
		TokensPrompt:   usage.PromptTokens(),
		TokensResponse: usage.CompletionTokens(),
		CostUSD:        cost,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record assistant message: %w", err)
	}

	latency := result.LatencyMS
	event := NewUsageEvent{
		SessionMessageID: assistant.ID,
		Model:            model,
		TokensPrompt:     usage.PromptTokens(),
		TokensResponse:   usage.CompletionTokens(),
		CostUSD:          cost,
		LatencyMS:        &latency,
	}
	if session != nil {
		event.ProjectID = session.ProjectID
	}

	if _, usageErr := r.usage.LogUsageEvent(ctx, event); usageErr != nil {
		return nil, fmt.Errorf("failed to log usage event: %w", usageErr)
	}

	r.events.Publish(ctx, "llm.run.completed", map[string]any{
		"message_id":      assistant.ID,
		"model":           model,
		"tokens_prompt":   event.TokensPrompt,
		"tokens_response": event.TokensResponse,
		"cost_usd":        cost,
		"latency_ms":      latency,
	})

	if r.indexer != nil {
		if indexErr := r.indexer.Index(ctx, assistant); indexErr != nil {
			logger.Warn("failed to index assistant message, continuing",
				observability.String("message_id", assistant.ID),
				observability.Error(indexErr))
		}
	}

	return &RunResult{
		ID:      assistant.ID,
		Content: result.Text,
		Usage:   usage,
	}, nil
}

// recordUserTurns persists user turns flattened to text. Failures are logged
// and never block the run.
func (r *RunService) recordUserTurns(ctx context.Context, sessionID, model string, turns []Turn) {
	logger := observability.FromContext(ctx)

	for _, turn := range turns {
		if turn.Role != RoleUser {
			continue
		}

		_, err := r.sessions.CreateMessage(ctx, NewMessage{
			SessionID: sessionID,
			Role:      RoleUser,
			Content:   turn.Content.Flatten(userContentSeparator),
			Model:     model,
		})
		if err != nil {
			logger.Warn("failed to record user message, continuing", observability.Error(err))
		}
	}
}
