package openai

import "time"

// Config holds configuration for the embedding gateway.
type Config struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	Timeout      time.Duration
	MaxRetries   int
}
