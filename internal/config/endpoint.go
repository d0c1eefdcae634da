package config

import "strings"

// Credential sources reported by ResolveEndpoint.
const (
	SourceOpenRouter          = "openrouter"
	SourceOpenRouterViaOpenAI = "openrouter(via OPENAI_API_KEY)"
	SourceOpenAI              = "openai"
	SourceNone                = "none"
)

const openRouterKeyPrefix = "sk-or-"

// Endpoint is the upstream base URL and credential both gateways talk to.
type Endpoint struct {
	APIKey  string
	BaseURL string
	Source  string
}

// HasCredential reports whether a key was resolved.
func (e Endpoint) HasCredential() bool {
	return e.APIKey != ""
}

// ResolveEndpoint picks the upstream endpoint once at startup.
// An OpenRouter key wins over a generic key. A generic key that looks like an
// OpenRouter key is only redirected when DetectKeyPrefix is set.
func ResolveEndpoint(cfg *ProviderConfig) Endpoint {
	if cfg == nil {
		return Endpoint{Source: SourceNone}
	}

	openRouterKey := strings.TrimSpace(cfg.OpenRouterAPIKey)
	openAIKey := strings.TrimSpace(cfg.OpenAIAPIKey)

	switch {
	case openRouterKey != "":
		return Endpoint{APIKey: openRouterKey, BaseURL: cfg.OpenRouterBaseURL, Source: SourceOpenRouter}
	case openAIKey != "" && cfg.DetectKeyPrefix && strings.HasPrefix(openAIKey, openRouterKeyPrefix):
		return Endpoint{APIKey: openAIKey, BaseURL: cfg.OpenRouterBaseURL, Source: SourceOpenRouterViaOpenAI}
	case openAIKey != "":
		return Endpoint{APIKey: openAIKey, BaseURL: cfg.OpenAIBaseURL, Source: SourceOpenAI}
	default:
		return Endpoint{Source: SourceNone}
	}
}
