package domain

import "time"

// Project groups prompts and sessions.
type Project struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Prompt is a named, versioned template.
type Prompt struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	Name            string    `json:"name"`
	Template        string    `json:"template"`
	DefaultModel    string    `json:"default_model,omitempty"`
	Tags            []string  `json:"tags"`
	LatestVersionID string    `json:"latest_version_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PromptVersion is an immutable snapshot of a prompt template.
type PromptVersion struct {
	ID            string    `json:"id"`
	PromptID      string    `json:"prompt_id"`
	VersionNumber int       `json:"version_number"`
	Template      string    `json:"template"`
	CreatedAt     time.Time `json:"created_at"`
}

// Session is a conversation within a project.
type Session struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"project_id"`
	Title     string         `json:"title"`
	Tags      []string       `json:"tags"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SessionMessage is a persisted conversation turn. SessionID is empty for
// runs made outside a session.
type SessionMessage struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"session_id,omitempty"`
	Role           Role      `json:"role"`
	PromptID       string    `json:"prompt_id,omitempty"`
	Content        string    `json:"content"`
	Model          string    `json:"model,omitempty"`
	TokensPrompt   int       `json:"tokens_prompt"`
	TokensResponse int       `json:"tokens_response"`
	CostUSD        float64   `json:"cost_usd"`
	EmbedIndexed   bool      `json:"embed_indexed"`
	CreatedAt      time.Time `json:"created_at"`
}

// UsageEvent records the token, cost and latency accounting of one provider call.
type UsageEvent struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id,omitempty"`
	ProjectID        string    `json:"project_id,omitempty"`
	SessionMessageID string    `json:"session_message_id,omitempty"`
	Model            string    `json:"model"`
	TokensPrompt     int       `json:"tokens_prompt"`
	TokensResponse   int       `json:"tokens_response"`
	CostUSD          float64   `json:"cost_usd"`
	LatencyMS        *int64    `json:"latency_ms,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// EmbeddingRecord links a session message to its vector in the index.
type EmbeddingRecord struct {
	ID               string    `json:"id"`
	SessionMessageID string    `json:"session_message_id"`
	VectorID         string    `json:"vector_id"`
	TextSnippet      string    `json:"text_snippet"`
	Namespace        string    `json:"namespace"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewProject is the input of CreateProject.
type NewProject struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewPrompt is the input of CreatePrompt.
type NewPrompt struct {
	ProjectID    string   `json:"project_id"`
	Name         string   `json:"name"`
	Template     string   `json:"template"`
	DefaultModel string   `json:"default_model,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// NewSession is the input of CreateSession.
type NewSession struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title,omitempty"`
}

// NewMessage is the input of CreateMessage.
type NewMessage struct {
	SessionID      string  `json:"-"`
	Role           Role    `json:"role"`
	Content        string  `json:"content"`
	PromptID       string  `json:"prompt_id,omitempty"`
	Model          string  `json:"model,omitempty"`
	TokensPrompt   int     `json:"-"`
	TokensResponse int     `json:"-"`
	CostUSD        float64 `json:"-"`
}

// NewUsageEvent is the input of LogUsageEvent.
type NewUsageEvent struct {
	UserID           string
	ProjectID        string
	SessionMessageID string
	Model            string
	TokensPrompt     int
	TokensResponse   int
	CostUSD          float64
	LatencyMS        *int64
}

// NewEmbeddingRecord is the input of RecordEmbedding.
type NewEmbeddingRecord struct {
	SessionMessageID string
	VectorID         string
	TextSnippet      string
	Namespace        string
}

// ListOptions pages list queries. ProjectID optionally filters.
type ListOptions struct {
	ProjectID string
	Limit     int
	Offset    int
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Normalize applies the default page size and clamps out-of-range values.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = defaultListLimit
	}
	if o.Limit > maxListLimit {
		o.Limit = maxListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
