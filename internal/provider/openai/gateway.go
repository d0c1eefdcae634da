// Package openai implements the chat completion gateway over any
// OpenAI-compatible endpoint (OpenRouter or OpenAI) using the official SDK.
// Requests are sent as raw JSON maps so provider extensions pass through, and
// replies are normalized by the domain package.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"

	"github.com/davidbz/llm-workflow/internal/domain"
	"github.com/davidbz/llm-workflow/internal/observability"
)

const (
	chatCompletionsPath = "chat/completions"

	unexpectedProviderPrefix = "unexpected provider error: "
)

// Gateway implements domain.ChatGateway.
type Gateway struct {
	client       openai.Client
	name         string
	defaultModel string
	hasKey       bool
}

// NewGateway creates a new chat gateway. A missing API key is not an error
// here; every call fails with a ProviderError until one is configured.
func NewGateway(config Config) *Gateway {
	name := config.Source
	if name == "" {
		name = "openai"
	}

	return &Gateway{
		client:       NewSDKClient(config),
		name:         name,
		defaultModel: config.DefaultModel,
		hasKey:       config.APIKey != "",
	}
}

// Name returns the gateway identifier.
func (g *Gateway) Name() string {
	return g.name
}

// Complete sends one chat completion request and normalizes the reply.
func (g *Gateway) Complete(ctx context.Context, req *domain.CompletionRequest) (result *domain.CompletionResult, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = &domain.ProviderError{Message: fmt.Sprintf("%s%v", unexpectedProviderPrefix, recovered)}
		}
	}()

	if req == nil {
		return nil, &domain.ProviderError{Message: "request cannot be nil"}
	}

	if !g.hasKey {
		return nil, &domain.ProviderError{Message: "no API key configured for chat completions"}
	}

	model := req.Model
	if model == "" {
		model = g.defaultModel
	}

	ctx = observability.WithProvider(observability.WithModel(ctx, model), g.name)
	logger := observability.FromContext(ctx)
	logger.Debug("calling chat completions", observability.Int("turns", len(req.Turns)))

	body := buildRequestBody(req, model)

	var raw map[string]any
	start := time.Now()
	callErr := g.client.Post(ctx, chatCompletionsPath, body, &raw, HeaderOptions(req.ExtraHeaders)...)
	latency := time.Since(start).Milliseconds()

	if callErr != nil {
		logger.Error("chat completion call failed", observability.Error(callErr))
		return nil, toProviderError(callErr)
	}

	if raw == nil {
		raw = map[string]any{}
	}

	text, usage := domain.NormalizeCompletion(raw)

	logger.Debug("chat completion call succeeded",
		observability.Int("prompt_tokens", usage.PromptTokens()),
		observability.Int("completion_tokens", usage.CompletionTokens()),
		observability.Int64("latency_ms", latency),
	)

	return &domain.CompletionResult{
		Text:      text,
		Usage:     usage,
		LatencyMS: latency,
		Raw:       raw,
	}, nil
}

// buildRequestBody merges extra body fields under the declared fields.
// An unset MaxOutputTokens is not declared, so it neither sends nor overrides max_tokens.
func buildRequestBody(req *domain.CompletionRequest, model string) map[string]any {
	body := make(map[string]any, len(req.ExtraBody)+4)
	for key, value := range req.ExtraBody {
		body[key] = value
	}

	messages := make([]map[string]any, 0, len(req.Turns))
	for _, turn := range req.Turns {
		messages = append(messages, map[string]any{
			"role":    string(turn.Role),
			"content": turn.Content.Wire(),
		})
	}

	body["model"] = model
	body["messages"] = messages
	body["temperature"] = req.Temperature

	if req.MaxOutputTokens != nil {
		body["max_tokens"] = *req.MaxOutputTokens
	}

	return body
}

func toProviderError(err error) *domain.ProviderError {
	if IsExpectedError(err) {
		return &domain.ProviderError{Message: err.Error()}
	}
	return &domain.ProviderError{Message: unexpectedProviderPrefix + err.Error()}
}
