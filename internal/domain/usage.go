package domain

import (
	"encoding/json"
	"math"
)

// Usage is the provider usage mapping as returned upstream (prompt_tokens,
// completion_tokens, input_tokens, ...). It may be empty.
type Usage map[string]any

// PromptTokens returns prompt_tokens, falling back to input_tokens.
func (u Usage) PromptTokens() int {
	return u.firstCount("prompt_tokens", "input_tokens")
}

// CompletionTokens returns completion_tokens, falling back to output_tokens.
func (u Usage) CompletionTokens() int {
	return u.firstCount("completion_tokens", "output_tokens")
}

// TotalTokens returns total_tokens, or the sum of prompt and completion tokens.
func (u Usage) TotalTokens() int {
	if total := u.firstCount("total_tokens"); total > 0 {
		return total
	}
	return u.PromptTokens() + u.CompletionTokens()
}

// firstCount returns the first non-zero numeric value among keys.
func (u Usage) firstCount(keys ...string) int {
	for _, key := range keys {
		if n, ok := toNumber(u[key]); ok && n != 0 {
			return int(math.Round(n))
		}
	}
	return 0
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
