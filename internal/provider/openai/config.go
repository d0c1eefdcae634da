package openai

import "time"

// Config contains upstream provider configuration.
// All fields map to OpenAI SDK options:
//   - APIKey: Maps to option.WithAPIKey()
//   - BaseURL: Maps to option.WithBaseURL()
//   - Timeout: Maps to option.WithRequestTimeout()
//   - MaxRetries: Maps to option.WithMaxRetries()
//   - HTTPReferer, AppTitle: Map to option.WithHeader() (OpenRouter attribution)
type Config struct {
	APIKey       string
	BaseURL      string
	Source       string
	DefaultModel string
	Timeout      time.Duration
	MaxRetries   int
	HTTPReferer  string
	AppTitle     string
}
