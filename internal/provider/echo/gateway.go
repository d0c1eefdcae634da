// Package echo provides an offline chat gateway that echoes back input turns.
// It implements domain.ChatGateway without making external API calls,
// providing deterministic replies for local development and tests.
package echo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/davidbz/llm-workflow/internal/domain"
	"github.com/davidbz/llm-workflow/internal/observability"
)

const (
	gatewayName = "echo"
	modelName   = "echo4"
)

// Gateway implements domain.ChatGateway for offline use.
type Gateway struct {
	name string
}

// NewGateway creates a new echo gateway.
// No configuration is required as this gateway operates entirely in-memory.
func NewGateway() *Gateway {
	return &Gateway{name: gatewayName}
}

// Complete returns the flattened turns as the reply with word-count usage.
func (g *Gateway) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResult, error) {
	if req == nil {
		return nil, &domain.ProviderError{Message: "request cannot be nil"}
	}

	model := req.Model
	if model == "" {
		model = modelName
	}

	logger := observability.FromContext(ctx)
	logger.Debug("echoing request")

	start := time.Now()
	echoContent := buildEchoContent(req.Turns)

	// Simple word-based counting
	promptTokens := countTokens(echoContent)
	completionTokens := promptTokens

	raw := map[string]any{
		"id":    fmt.Sprintf("echo-%d", time.Now().UnixNano()),
		"model": model,
		"choices": []any{
			map[string]any{"message": map[string]any{"role": "assistant", "content": echoContent}},
		},
		"usage": map[string]any{
			"prompt_tokens":     float64(promptTokens),
			"completion_tokens": float64(completionTokens),
			"total_tokens":      float64(promptTokens + completionTokens),
		},
	}

	text, usage := domain.NormalizeCompletion(raw)

	logger.Debug("echo completed",
		observability.Int("prompt_tokens", promptTokens),
		observability.Int("completion_tokens", completionTokens),
	)

	return &domain.CompletionResult{
		Text:      text,
		Usage:     usage,
		LatencyMS: time.Since(start).Milliseconds(),
		Raw:       raw,
	}, nil
}

// Name returns the gateway identifier.
func (g *Gateway) Name() string {
	return g.name
}

// buildEchoContent constructs the echo reply from request turns.
func buildEchoContent(turns []domain.Turn) string {
	if len(turns) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, turn := range turns {
		builder.WriteString(fmt.Sprintf("[%s]: %s\n", turn.Role, turn.Content.Flatten(" ")))
	}
	return builder.String()
}

// countTokens performs simple word-based token counting.
func countTokens(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Fields(content))
}
