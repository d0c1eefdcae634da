package domain

// Role identifies the speaker of a conversation turn.
type Role string

// Supported conversation roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Turn is a single message of a conversation.
type Turn struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// CompletionRequest is a chat completion call to the upstream provider.
// MaxOutputTokens is a pointer so that "unset" is distinguishable from zero.
type CompletionRequest struct {
	Turns           []Turn            `json:"messages"`
	Model           string            `json:"model,omitempty"`
	MaxOutputTokens *int              `json:"max_tokens,omitempty"`
	Temperature     float64           `json:"temperature"`
	ExtraHeaders    map[string]string `json:"-"`
	ExtraBody       map[string]any    `json:"-"`
}

// CompletionResult is the normalized provider reply.
// Text is never nil: extraction failures degrade to a stringified fallback.
type CompletionResult struct {
	Text      string         `json:"text"`
	Usage     Usage          `json:"usage"`
	LatencyMS int64          `json:"latency_ms"`
	Raw       map[string]any `json:"raw,omitempty"`
}

// EmbeddingRequest is a batch embedding call.
type EmbeddingRequest struct {
	Texts []string `json:"input"`
	Model string   `json:"model,omitempty"`
}

// EmbeddingResult holds vectors positionally aligned with the request texts.
// Alignment is best effort: a provider returning fewer items yields fewer vectors.
type EmbeddingResult struct {
	Vectors [][]float64 `json:"data"`
	Usage   Usage       `json:"usage,omitempty"`
}
