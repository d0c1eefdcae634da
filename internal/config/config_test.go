package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/llm-workflow/internal/config"
)

// unsetEnv clears a variable for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		unsetEnv(t,
			"SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
			"OPENROUTER_API_KEY", "OPENROUTER_BASE_URL", "OPENAI_API_KEY", "OPENAI_BASE_URL",
			"DEFAULT_MODEL", "EMBED_MODEL", "PROVIDER_TIMEOUT", "PROVIDER_MAX_RETRIES",
			"OPENROUTER_DETECT_KEY_PREFIX", "DATABASE_PATH", "MESSAGE_INDEX_ENABLED", "EMBED_DIMENSION",
		)

		cfg, err := config.Load()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		require.Equal(t, 8000, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, "https://openrouter.ai/api/v1", cfg.Provider.OpenRouterBaseURL)
		require.Equal(t, "https://api.openai.com/v1", cfg.Provider.OpenAIBaseURL)
		require.Equal(t, "openai/chatgpt-4o-latest", cfg.Provider.DefaultModel)
		require.Equal(t, "text-embedding-3-small", cfg.Provider.EmbeddingModel)
		require.Equal(t, 60, cfg.Provider.Timeout)
		require.Equal(t, 0, cfg.Provider.MaxRetries)
		require.False(t, cfg.Provider.DetectKeyPrefix)
		require.Empty(t, cfg.Provider.OpenAIAPIKey)
		require.Empty(t, cfg.Provider.OpenRouterAPIKey)
		require.Equal(t, "llm_workflow.db", cfg.Database.Path)
		require.False(t, cfg.VectorIndex.Enabled)
		require.Equal(t, "memory", cfg.VectorIndex.Backend)
		require.Zero(t, cfg.VectorIndex.Dimension)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
		t.Setenv("OPENAI_API_KEY", "sk-test-key")
		t.Setenv("OPENAI_BASE_URL", "https://test.openai.com")
		t.Setenv("PROVIDER_TIMEOUT", "120")
		t.Setenv("DEFAULT_MODEL", "openai/gpt-4o")
		t.Setenv("VECTOR_INDEX_BACKEND", "redis")
		t.Setenv("MESSAGE_INDEX_ENABLED", "true")

		cfg, err := config.Load()

		require.NoError(t, err)
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, "sk-or-test", cfg.Provider.OpenRouterAPIKey)
		require.Equal(t, "sk-test-key", cfg.Provider.OpenAIAPIKey)
		require.Equal(t, "https://test.openai.com", cfg.Provider.OpenAIBaseURL)
		require.Equal(t, 120, cfg.Provider.Timeout)
		require.Equal(t, 120*time.Second, cfg.Provider.TimeoutDuration())
		require.Equal(t, "openai/gpt-4o", cfg.Provider.DefaultModel)
		require.Equal(t, "redis", cfg.VectorIndex.Backend)
		require.True(t, cfg.VectorIndex.Enabled)
	})

	t.Run("should fail on malformed numbers", func(t *testing.T) {
		t.Setenv("PROVIDER_TIMEOUT", "sixty")

		cfg, err := config.Load()

		require.Error(t, err)
		require.Nil(t, cfg)
	})
}

func TestResolveEndpoint(t *testing.T) {
	base := config.ProviderConfig{
		OpenRouterBaseURL: "https://openrouter.ai/api/v1",
		OpenAIBaseURL:     "https://api.openai.com/v1",
	}

	tests := []struct {
		name     string
		mutate   func(cfg *config.ProviderConfig)
		expected config.Endpoint
	}{
		{
			name: "openrouter key wins over generic key",
			mutate: func(cfg *config.ProviderConfig) {
				cfg.OpenRouterAPIKey = "sk-or-primary"
				cfg.OpenAIAPIKey = "sk-generic"
			},
			expected: config.Endpoint{
				APIKey:  "sk-or-primary",
				BaseURL: "https://openrouter.ai/api/v1",
				Source:  config.SourceOpenRouter,
			},
		},
		{
			name: "generic key uses direct provider endpoint",
			mutate: func(cfg *config.ProviderConfig) {
				cfg.OpenAIAPIKey = "sk-generic"
			},
			expected: config.Endpoint{
				APIKey:  "sk-generic",
				BaseURL: "https://api.openai.com/v1",
				Source:  config.SourceOpenAI,
			},
		},
		{
			name: "openrouter-looking generic key is not redirected by default",
			mutate: func(cfg *config.ProviderConfig) {
				cfg.OpenAIAPIKey = "sk-or-misplaced"
			},
			expected: config.Endpoint{
				APIKey:  "sk-or-misplaced",
				BaseURL: "https://api.openai.com/v1",
				Source:  config.SourceOpenAI,
			},
		},
		{
			name: "prefix detection redirects when enabled",
			mutate: func(cfg *config.ProviderConfig) {
				cfg.OpenAIAPIKey = "sk-or-misplaced"
				cfg.DetectKeyPrefix = true
			},
			expected: config.Endpoint{
				APIKey:  "sk-or-misplaced",
				BaseURL: "https://openrouter.ai/api/v1",
				Source:  config.SourceOpenRouterViaOpenAI,
			},
		},
		{
			name:     "no key resolves to no credential",
			mutate:   func(_ *config.ProviderConfig) {},
			expected: config.Endpoint{Source: config.SourceNone},
		},
		{
			name: "whitespace-only key counts as missing",
			mutate: func(cfg *config.ProviderConfig) {
				cfg.OpenRouterAPIKey = "   "
			},
			expected: config.Endpoint{Source: config.SourceNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			endpoint := config.ResolveEndpoint(&cfg)

			require.Equal(t, tt.expected, endpoint)
			require.Equal(t, tt.expected.APIKey != "", endpoint.HasCredential())
		})
	}

	t.Run("nil config has no credential", func(t *testing.T) {
		require.False(t, config.ResolveEndpoint(nil).HasCredential())
	})
}
