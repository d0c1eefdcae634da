package echo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/llm-workflow/internal/domain"
	"github.com/davidbz/llm-workflow/internal/provider/echo"
)

func TestNewGateway(t *testing.T) {
	gateway := echo.NewGateway()

	require.NotNil(t, gateway)
	require.Equal(t, "echo", gateway.Name())
}

func TestComplete_Success(t *testing.T) {
	gateway := echo.NewGateway()

	result, err := gateway.Complete(context.Background(), &domain.CompletionRequest{
		Turns: []domain.Turn{
			{Role: domain.RoleUser, Content: domain.NewTextContent("Hello world")},
		},
	})

	require.NoError(t, err)
	require.Equal(t, "[user]: Hello world\n", result.Text)
	require.Equal(t, 3, result.Usage.PromptTokens()) // "[user]:" "Hello" "world"
	require.Equal(t, 3, result.Usage.CompletionTokens())
	require.Equal(t, 6, result.Usage.TotalTokens())
	require.GreaterOrEqual(t, result.LatencyMS, int64(0))
	require.Equal(t, "echo4", result.Raw["model"])
}

func TestComplete_StructuredContent(t *testing.T) {
	gateway := echo.NewGateway()

	result, err := gateway.Complete(context.Background(), &domain.CompletionRequest{
		Model: "openai/gpt-4o",
		Turns: []domain.Turn{
			{Role: domain.RoleSystem, Content: domain.NewTextContent("be brief")},
			{Role: domain.RoleUser, Content: domain.NewBlockContent(domain.TextBlock("a"), domain.StringBlock("b"))},
		},
	})

	require.NoError(t, err)
	require.Equal(t, "[system]: be brief\n[user]: a b\n", result.Text)
	require.Equal(t, "openai/gpt-4o", result.Raw["model"])
}

func TestComplete_NilRequest(t *testing.T) {
	result, err := echo.NewGateway().Complete(context.Background(), nil)

	require.Nil(t, result)

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	require.Contains(t, providerErr.Message, "request cannot be nil")
}

func TestComplete_EmptyTurns(t *testing.T) {
	result, err := echo.NewGateway().Complete(context.Background(), &domain.CompletionRequest{})

	require.NoError(t, err)
	require.Empty(t, result.Text)
	require.Equal(t, 0, result.Usage.TotalTokens())
}

func TestRegisterPricing(t *testing.T) {
	ctx := context.Background()
	registry := domain.NewInMemoryPricingRegistry()

	require.NoError(t, echo.RegisterPricing(ctx, registry))

	pricing, err := registry.GetPricing(ctx, "echo4")
	require.NoError(t, err)
	require.Zero(t, pricing.InputCostPer1K)
}
